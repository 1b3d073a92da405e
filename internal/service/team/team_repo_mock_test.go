package team

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

var _ teamRepo = &teamRepoMock{}

type teamRepoMock struct {
	ListMembersFunc         func(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamMember, error)
	CountMembersFunc        func(ctx context.Context, ownerID uuid.UUID) (int, error)
	AddMemberFunc           func(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	UpdateMemberRoleFunc    func(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, role domain.TeamRole) (*domain.TeamMember, error)
	RemoveMemberFunc        func(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	CreateInvitationFunc    func(ctx context.Context, inv *domain.TeamInvitation) (*domain.TeamInvitation, error)
	ListInvitationsFunc     func(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamInvitation, error)
	GetInvitationByHashFunc func(ctx context.Context, tokenHash string) (*domain.TeamInvitation, error)
	RespondFunc             func(ctx context.Context, id uuid.UUID, status domain.InvitationStatus, at time.Time) error
	RevokeInvitationFunc    func(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, at time.Time) error
	ExpireInvitationsFunc   func(ctx context.Context, now time.Time) (int, error)

	calls struct {
		ListMembers []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		CountMembers []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		AddMember []struct {
			Ctx context.Context
			M   *domain.TeamMember
		}
		UpdateMemberRole []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Id      uuid.UUID
			Role    domain.TeamRole
		}
		RemoveMember []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Id      uuid.UUID
		}
		CreateInvitation []struct {
			Ctx context.Context
			Inv *domain.TeamInvitation
		}
		ListInvitations []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
		}
		GetInvitationByHash []struct {
			Ctx       context.Context
			TokenHash string
		}
		Respond []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Status domain.InvitationStatus
			At     time.Time
		}
		RevokeInvitation []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Id      uuid.UUID
			At      time.Time
		}
		ExpireInvitations []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockListMembers         sync.RWMutex
	lockCountMembers        sync.RWMutex
	lockAddMember           sync.RWMutex
	lockUpdateMemberRole    sync.RWMutex
	lockRemoveMember        sync.RWMutex
	lockCreateInvitation    sync.RWMutex
	lockListInvitations     sync.RWMutex
	lockGetInvitationByHash sync.RWMutex
	lockRespond             sync.RWMutex
	lockRevokeInvitation    sync.RWMutex
	lockExpireInvitations   sync.RWMutex
}

func (mock *teamRepoMock) ListMembers(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamMember, error) {
	if mock.ListMembersFunc == nil {
		panic("teamRepoMock.ListMembersFunc: method is nil but teamRepo.ListMembers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockListMembers.Lock()
	mock.calls.ListMembers = append(mock.calls.ListMembers, callInfo)
	mock.lockListMembers.Unlock()
	return mock.ListMembersFunc(ctx, ownerID)
}

func (mock *teamRepoMock) ListMembersCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockListMembers.RLock()
	calls := mock.calls.ListMembers
	mock.lockListMembers.RUnlock()
	return calls
}

func (mock *teamRepoMock) CountMembers(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if mock.CountMembersFunc == nil {
		panic("teamRepoMock.CountMembersFunc: method is nil but teamRepo.CountMembers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockCountMembers.Lock()
	mock.calls.CountMembers = append(mock.calls.CountMembers, callInfo)
	mock.lockCountMembers.Unlock()
	return mock.CountMembersFunc(ctx, ownerID)
}

func (mock *teamRepoMock) CountMembersCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockCountMembers.RLock()
	calls := mock.calls.CountMembers
	mock.lockCountMembers.RUnlock()
	return calls
}

func (mock *teamRepoMock) AddMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	if mock.AddMemberFunc == nil {
		panic("teamRepoMock.AddMemberFunc: method is nil but teamRepo.AddMember was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   *domain.TeamMember
	}{Ctx: ctx, M: m}
	mock.lockAddMember.Lock()
	mock.calls.AddMember = append(mock.calls.AddMember, callInfo)
	mock.lockAddMember.Unlock()
	return mock.AddMemberFunc(ctx, m)
}

func (mock *teamRepoMock) AddMemberCalls() []struct {
	Ctx context.Context
	M   *domain.TeamMember
} {
	mock.lockAddMember.RLock()
	calls := mock.calls.AddMember
	mock.lockAddMember.RUnlock()
	return calls
}

func (mock *teamRepoMock) UpdateMemberRole(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, role domain.TeamRole) (*domain.TeamMember, error) {
	if mock.UpdateMemberRoleFunc == nil {
		panic("teamRepoMock.UpdateMemberRoleFunc: method is nil but teamRepo.UpdateMemberRole was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Id      uuid.UUID
		Role    domain.TeamRole
	}{Ctx: ctx, OwnerID: ownerID, Id: id, Role: role}
	mock.lockUpdateMemberRole.Lock()
	mock.calls.UpdateMemberRole = append(mock.calls.UpdateMemberRole, callInfo)
	mock.lockUpdateMemberRole.Unlock()
	return mock.UpdateMemberRoleFunc(ctx, ownerID, id, role)
}

func (mock *teamRepoMock) UpdateMemberRoleCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Id      uuid.UUID
	Role    domain.TeamRole
} {
	mock.lockUpdateMemberRole.RLock()
	calls := mock.calls.UpdateMemberRole
	mock.lockUpdateMemberRole.RUnlock()
	return calls
}

func (mock *teamRepoMock) RemoveMember(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	if mock.RemoveMemberFunc == nil {
		panic("teamRepoMock.RemoveMemberFunc: method is nil but teamRepo.RemoveMember was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Id      uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID, Id: id}
	mock.lockRemoveMember.Lock()
	mock.calls.RemoveMember = append(mock.calls.RemoveMember, callInfo)
	mock.lockRemoveMember.Unlock()
	return mock.RemoveMemberFunc(ctx, ownerID, id)
}

func (mock *teamRepoMock) RemoveMemberCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Id      uuid.UUID
} {
	mock.lockRemoveMember.RLock()
	calls := mock.calls.RemoveMember
	mock.lockRemoveMember.RUnlock()
	return calls
}

func (mock *teamRepoMock) CreateInvitation(ctx context.Context, inv *domain.TeamInvitation) (*domain.TeamInvitation, error) {
	if mock.CreateInvitationFunc == nil {
		panic("teamRepoMock.CreateInvitationFunc: method is nil but teamRepo.CreateInvitation was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Inv *domain.TeamInvitation
	}{Ctx: ctx, Inv: inv}
	mock.lockCreateInvitation.Lock()
	mock.calls.CreateInvitation = append(mock.calls.CreateInvitation, callInfo)
	mock.lockCreateInvitation.Unlock()
	return mock.CreateInvitationFunc(ctx, inv)
}

func (mock *teamRepoMock) CreateInvitationCalls() []struct {
	Ctx context.Context
	Inv *domain.TeamInvitation
} {
	mock.lockCreateInvitation.RLock()
	calls := mock.calls.CreateInvitation
	mock.lockCreateInvitation.RUnlock()
	return calls
}

func (mock *teamRepoMock) ListInvitations(ctx context.Context, ownerID uuid.UUID) ([]domain.TeamInvitation, error) {
	if mock.ListInvitationsFunc == nil {
		panic("teamRepoMock.ListInvitationsFunc: method is nil but teamRepo.ListInvitations was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
	}{Ctx: ctx, OwnerID: ownerID}
	mock.lockListInvitations.Lock()
	mock.calls.ListInvitations = append(mock.calls.ListInvitations, callInfo)
	mock.lockListInvitations.Unlock()
	return mock.ListInvitationsFunc(ctx, ownerID)
}

func (mock *teamRepoMock) ListInvitationsCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
} {
	mock.lockListInvitations.RLock()
	calls := mock.calls.ListInvitations
	mock.lockListInvitations.RUnlock()
	return calls
}

func (mock *teamRepoMock) GetInvitationByHash(ctx context.Context, tokenHash string) (*domain.TeamInvitation, error) {
	if mock.GetInvitationByHashFunc == nil {
		panic("teamRepoMock.GetInvitationByHashFunc: method is nil but teamRepo.GetInvitationByHash was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TokenHash string
	}{Ctx: ctx, TokenHash: tokenHash}
	mock.lockGetInvitationByHash.Lock()
	mock.calls.GetInvitationByHash = append(mock.calls.GetInvitationByHash, callInfo)
	mock.lockGetInvitationByHash.Unlock()
	return mock.GetInvitationByHashFunc(ctx, tokenHash)
}

func (mock *teamRepoMock) GetInvitationByHashCalls() []struct {
	Ctx       context.Context
	TokenHash string
} {
	mock.lockGetInvitationByHash.RLock()
	calls := mock.calls.GetInvitationByHash
	mock.lockGetInvitationByHash.RUnlock()
	return calls
}

func (mock *teamRepoMock) Respond(ctx context.Context, id uuid.UUID, status domain.InvitationStatus, at time.Time) error {
	if mock.RespondFunc == nil {
		panic("teamRepoMock.RespondFunc: method is nil but teamRepo.Respond was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.InvitationStatus
		At     time.Time
	}{Ctx: ctx, Id: id, Status: status, At: at}
	mock.lockRespond.Lock()
	mock.calls.Respond = append(mock.calls.Respond, callInfo)
	mock.lockRespond.Unlock()
	return mock.RespondFunc(ctx, id, status, at)
}

func (mock *teamRepoMock) RespondCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Status domain.InvitationStatus
	At     time.Time
} {
	mock.lockRespond.RLock()
	calls := mock.calls.Respond
	mock.lockRespond.RUnlock()
	return calls
}

func (mock *teamRepoMock) RevokeInvitation(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, at time.Time) error {
	if mock.RevokeInvitationFunc == nil {
		panic("teamRepoMock.RevokeInvitationFunc: method is nil but teamRepo.RevokeInvitation was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Id      uuid.UUID
		At      time.Time
	}{Ctx: ctx, OwnerID: ownerID, Id: id, At: at}
	mock.lockRevokeInvitation.Lock()
	mock.calls.RevokeInvitation = append(mock.calls.RevokeInvitation, callInfo)
	mock.lockRevokeInvitation.Unlock()
	return mock.RevokeInvitationFunc(ctx, ownerID, id, at)
}

func (mock *teamRepoMock) RevokeInvitationCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Id      uuid.UUID
	At      time.Time
} {
	mock.lockRevokeInvitation.RLock()
	calls := mock.calls.RevokeInvitation
	mock.lockRevokeInvitation.RUnlock()
	return calls
}

func (mock *teamRepoMock) ExpireInvitations(ctx context.Context, now time.Time) (int, error) {
	if mock.ExpireInvitationsFunc == nil {
		panic("teamRepoMock.ExpireInvitationsFunc: method is nil but teamRepo.ExpireInvitations was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockExpireInvitations.Lock()
	mock.calls.ExpireInvitations = append(mock.calls.ExpireInvitations, callInfo)
	mock.lockExpireInvitations.Unlock()
	return mock.ExpireInvitationsFunc(ctx, now)
}

func (mock *teamRepoMock) ExpireInvitationsCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockExpireInvitations.RLock()
	calls := mock.calls.ExpireInvitations
	mock.lockExpireInvitations.RUnlock()
	return calls
}
