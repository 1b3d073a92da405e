package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/team"
)

var _ teamService = &teamServiceMock{}

type teamServiceMock struct {
	ListMembersFunc       func(ctx context.Context) ([]domain.TeamMember, error)
	UpdateMemberRoleFunc  func(ctx context.Context, input team.UpdateRoleInput) (*domain.TeamMember, error)
	RemoveMemberFunc      func(ctx context.Context, memberID uuid.UUID) error
	InviteFunc            func(ctx context.Context, input team.InviteInput) (*team.Invite, error)
	ListInvitationsFunc   func(ctx context.Context) ([]domain.TeamInvitation, error)
	RevokeInvitationFunc  func(ctx context.Context, id uuid.UUID) error
	AcceptInvitationFunc  func(ctx context.Context, token string) (*domain.TeamMember, error)
	DeclineInvitationFunc func(ctx context.Context, token string) error

	calls struct {
		ListMembers []struct {
			Ctx context.Context
		}
		UpdateMemberRole []struct {
			Ctx   context.Context
			Input team.UpdateRoleInput
		}
		RemoveMember []struct {
			Ctx      context.Context
			MemberID uuid.UUID
		}
		Invite []struct {
			Ctx   context.Context
			Input team.InviteInput
		}
		ListInvitations []struct {
			Ctx context.Context
		}
		RevokeInvitation []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		AcceptInvitation []struct {
			Ctx   context.Context
			Token string
		}
		DeclineInvitation []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockListMembers       sync.RWMutex
	lockUpdateMemberRole  sync.RWMutex
	lockRemoveMember      sync.RWMutex
	lockInvite            sync.RWMutex
	lockListInvitations   sync.RWMutex
	lockRevokeInvitation  sync.RWMutex
	lockAcceptInvitation  sync.RWMutex
	lockDeclineInvitation sync.RWMutex
}

func (mock *teamServiceMock) ListMembers(ctx context.Context) ([]domain.TeamMember, error) {
	if mock.ListMembersFunc == nil {
		panic("teamServiceMock.ListMembersFunc: method is nil but teamService.ListMembers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListMembers.Lock()
	mock.calls.ListMembers = append(mock.calls.ListMembers, callInfo)
	mock.lockListMembers.Unlock()
	return mock.ListMembersFunc(ctx)
}

func (mock *teamServiceMock) ListMembersCalls() []struct {
	Ctx context.Context
} {
	mock.lockListMembers.RLock()
	calls := mock.calls.ListMembers
	mock.lockListMembers.RUnlock()
	return calls
}

func (mock *teamServiceMock) UpdateMemberRole(ctx context.Context, input team.UpdateRoleInput) (*domain.TeamMember, error) {
	if mock.UpdateMemberRoleFunc == nil {
		panic("teamServiceMock.UpdateMemberRoleFunc: method is nil but teamService.UpdateMemberRole was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input team.UpdateRoleInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateMemberRole.Lock()
	mock.calls.UpdateMemberRole = append(mock.calls.UpdateMemberRole, callInfo)
	mock.lockUpdateMemberRole.Unlock()
	return mock.UpdateMemberRoleFunc(ctx, input)
}

func (mock *teamServiceMock) UpdateMemberRoleCalls() []struct {
	Ctx   context.Context
	Input team.UpdateRoleInput
} {
	mock.lockUpdateMemberRole.RLock()
	calls := mock.calls.UpdateMemberRole
	mock.lockUpdateMemberRole.RUnlock()
	return calls
}

func (mock *teamServiceMock) RemoveMember(ctx context.Context, memberID uuid.UUID) error {
	if mock.RemoveMemberFunc == nil {
		panic("teamServiceMock.RemoveMemberFunc: method is nil but teamService.RemoveMember was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		MemberID uuid.UUID
	}{Ctx: ctx, MemberID: memberID}
	mock.lockRemoveMember.Lock()
	mock.calls.RemoveMember = append(mock.calls.RemoveMember, callInfo)
	mock.lockRemoveMember.Unlock()
	return mock.RemoveMemberFunc(ctx, memberID)
}

func (mock *teamServiceMock) RemoveMemberCalls() []struct {
	Ctx      context.Context
	MemberID uuid.UUID
} {
	mock.lockRemoveMember.RLock()
	calls := mock.calls.RemoveMember
	mock.lockRemoveMember.RUnlock()
	return calls
}

func (mock *teamServiceMock) Invite(ctx context.Context, input team.InviteInput) (*team.Invite, error) {
	if mock.InviteFunc == nil {
		panic("teamServiceMock.InviteFunc: method is nil but teamService.Invite was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input team.InviteInput
	}{Ctx: ctx, Input: input}
	mock.lockInvite.Lock()
	mock.calls.Invite = append(mock.calls.Invite, callInfo)
	mock.lockInvite.Unlock()
	return mock.InviteFunc(ctx, input)
}

func (mock *teamServiceMock) InviteCalls() []struct {
	Ctx   context.Context
	Input team.InviteInput
} {
	mock.lockInvite.RLock()
	calls := mock.calls.Invite
	mock.lockInvite.RUnlock()
	return calls
}

func (mock *teamServiceMock) ListInvitations(ctx context.Context) ([]domain.TeamInvitation, error) {
	if mock.ListInvitationsFunc == nil {
		panic("teamServiceMock.ListInvitationsFunc: method is nil but teamService.ListInvitations was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListInvitations.Lock()
	mock.calls.ListInvitations = append(mock.calls.ListInvitations, callInfo)
	mock.lockListInvitations.Unlock()
	return mock.ListInvitationsFunc(ctx)
}

func (mock *teamServiceMock) ListInvitationsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListInvitations.RLock()
	calls := mock.calls.ListInvitations
	mock.lockListInvitations.RUnlock()
	return calls
}

func (mock *teamServiceMock) RevokeInvitation(ctx context.Context, id uuid.UUID) error {
	if mock.RevokeInvitationFunc == nil {
		panic("teamServiceMock.RevokeInvitationFunc: method is nil but teamService.RevokeInvitation was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockRevokeInvitation.Lock()
	mock.calls.RevokeInvitation = append(mock.calls.RevokeInvitation, callInfo)
	mock.lockRevokeInvitation.Unlock()
	return mock.RevokeInvitationFunc(ctx, id)
}

func (mock *teamServiceMock) RevokeInvitationCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockRevokeInvitation.RLock()
	calls := mock.calls.RevokeInvitation
	mock.lockRevokeInvitation.RUnlock()
	return calls
}

func (mock *teamServiceMock) AcceptInvitation(ctx context.Context, token string) (*domain.TeamMember, error) {
	if mock.AcceptInvitationFunc == nil {
		panic("teamServiceMock.AcceptInvitationFunc: method is nil but teamService.AcceptInvitation was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockAcceptInvitation.Lock()
	mock.calls.AcceptInvitation = append(mock.calls.AcceptInvitation, callInfo)
	mock.lockAcceptInvitation.Unlock()
	return mock.AcceptInvitationFunc(ctx, token)
}

func (mock *teamServiceMock) AcceptInvitationCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockAcceptInvitation.RLock()
	calls := mock.calls.AcceptInvitation
	mock.lockAcceptInvitation.RUnlock()
	return calls
}

func (mock *teamServiceMock) DeclineInvitation(ctx context.Context, token string) error {
	if mock.DeclineInvitationFunc == nil {
		panic("teamServiceMock.DeclineInvitationFunc: method is nil but teamService.DeclineInvitation was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockDeclineInvitation.Lock()
	mock.calls.DeclineInvitation = append(mock.calls.DeclineInvitation, callInfo)
	mock.lockDeclineInvitation.Unlock()
	return mock.DeclineInvitationFunc(ctx, token)
}

func (mock *teamServiceMock) DeclineInvitationCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockDeclineInvitation.RLock()
	calls := mock.calls.DeclineInvitation
	mock.lockDeclineInvitation.RUnlock()
	return calls
}
