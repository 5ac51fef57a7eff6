package service

import (
	"context"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type memberService struct {
	store repository.Store
}

func NewMemberService(store repository.Store) MemberService {
	return &memberService{store: store}
}

func (s *memberService) CreateMember(ctx context.Context, member *domain.Member) error {
	if member.FullName == "" {
		return domain.NewValidationError("full_name", domain.ErrMissingField, "full name is required")
	}
	if member.Diet == "" {
		return domain.NewValidationError("diet", domain.ErrMissingField, "diet is required")
	}
	return s.store.Members().Create(ctx, member)
}

func (s *memberService) GetMember(ctx context.Context, id int32) (*domain.Member, error) {
	return s.store.Members().GetByID(ctx, id)
}

func (s *memberService) UpdateMember(ctx context.Context, member *domain.Member) error {
	if member.FullName == "" {
		return domain.NewValidationError("full_name", domain.ErrMissingField, "full name is required")
	}
	return s.store.Members().Update(ctx, member)
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.store.Members().List(ctx)
}
