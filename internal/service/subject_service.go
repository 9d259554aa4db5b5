package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo}
}

type SubjectRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Order *int    `json:"order"`
}

func (s *SubjectService) Create(userID uint, req SubjectRequest) (*model.Subject, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errNameRequired
	}

	subject := &model.Subject{
		UserID: userID,
		Name:   *req.Name,
	}
	if req.Color != nil && *req.Color != "" {
		subject.Color = *req.Color
	}
	if req.Order != nil {
		subject.Order = *req.Order
	}

	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List(userID uint) ([]model.Subject, error) {
	return s.SubjectRepo.ListByUser(userID)
}

func (s *SubjectService) Get(id, userID uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByIDForUser(id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Update(id, userID uint, req SubjectRequest) (*model.Subject, error) {
	subject, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		subject.Name = *req.Name
	}
	if req.Color != nil && *req.Color != "" {
		subject.Color = *req.Color
	}
	if req.Order != nil {
		subject.Order = *req.Order
	}

	if err := s.SubjectRepo.Save(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.SubjectRepo.Delete(id, userID)
}
