package services

import (
	"fmt"

	"yatube/app/models"
	"yatube/app/repositories"
)

// GroupService lets administrators manage groups.
type GroupService struct {
	groupRepo repositories.GroupRepository
}

func NewGroupService(groupRepo repositories.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup adds a group. A taken slug yields repositories.ErrDuplicate.
func (s *GroupService) CreateGroup(slug, title, description string) (*models.Group, error) {
	group := &models.Group{Slug: slug, Title: title, Description: description}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group %q: %w", slug, err)
	}
	return group, nil
}

func (s *GroupService) ListGroups() ([]*models.Group, error) {
	return s.groupRepo.List()
}
