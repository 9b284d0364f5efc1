package usecase

import (
	"context"
	"errors"
	"fmt"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"

	"go.uber.org/zap"
)

const msgGroupNameTaken = "Group with this name already exists"

type GroupService interface {
	GetGroups(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GroupResponse], error)
	GetGroupByID(ctx context.Context, id int64) (*response.GroupResponse, error)
	CreateGroup(ctx context.Context, req *request.GroupRequest) (*response.GroupResponse, error)
	ReplaceGroup(ctx context.Context, id int64, req *request.GroupRequest) (*response.GroupResponse, error)
	UpdateGroup(ctx context.Context, id int64, req *request.GroupUpdateRequest) (*response.GroupResponse, error)
	DeleteGroup(ctx context.Context, id int64) error
}

type groupService struct {
	groups repository.GroupRepository
	log    *zap.Logger
}

func NewGroupService(groups repository.GroupRepository, log *zap.Logger) GroupService {
	return &groupService{
		groups: groups,
		log:    log.With(zap.String("service", "group")),
	}
}

func (s *groupService) GetGroups(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GroupResponse], error) {
	groups, err := s.groups.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}

	total, err := s.groups.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count groups: %w", err)
	}

	data := make([]response.GroupResponse, len(groups))
	for i, group := range groups {
		data[i] = response.GroupToResponse(group)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id int64) (*response.GroupResponse, error) {
	group, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.GroupToResponse(group)
	return &resp, nil
}

func (s *groupService) CreateGroup(ctx context.Context, req *request.GroupRequest) (*response.GroupResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	group := &entity.Group{Name: req.Name}
	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError("name", msgGroupNameTaken)
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.Info("Group created",
		zap.Int64("group_id", group.ID),
		zap.String("name", group.Name),
	)

	resp := response.GroupToResponse(group)
	return &resp, nil
}

func (s *groupService) ReplaceGroup(ctx context.Context, id int64, req *request.GroupRequest) (*response.GroupResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.UpdateGroup(ctx, id, &request.GroupUpdateRequest{Name: &req.Name})
}

func (s *groupService) UpdateGroup(ctx context.Context, id int64, req *request.GroupUpdateRequest) (*response.GroupResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	group, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name == nil || *req.Name == group.Name {
		resp := response.GroupToResponse(group)
		return &resp, nil
	}

	group.Name = *req.Name
	if err := s.groups.Update(ctx, group); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fieldError("name", msgGroupNameTaken)
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("group", id)
		default:
			return nil, fmt.Errorf("update group: %w", err)
		}
	}

	s.log.Info("Group updated",
		zap.Int64("group_id", group.ID),
		zap.String("name", group.Name),
	)

	resp := response.GroupToResponse(group)
	return &resp, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("group", id)
		}
		return fmt.Errorf("delete group: %w", err)
	}

	s.log.Info("Group deleted", zap.Int64("group_id", id))
	return nil
}

func (s *groupService) find(ctx context.Context, id int64) (*entity.Group, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get group by id: %w", err)
	}
	if group == nil {
		return nil, notFound("group", id)
	}
	return group, nil
}
