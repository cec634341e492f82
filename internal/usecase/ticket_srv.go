package usecase

import (
	"context"
	"fmt"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/data/repository"
	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/dto/response"
	"service-marketplace/pkg/apperrors"
	"service-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	Open(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID) (*response.TicketResponse, error)
	Reply(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID, req *request.ReplyTicketRequest) (*response.TicketReplyResponse, error)
	Close(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response.TicketResponse, error)
	// ListAll is the admin view, filterable by status.
	ListAll(ctx context.Context, req *request.ListTicketsRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	// Update is the admin edit of status, priority and resolution.
	Update(ctx context.Context, ticketID uuid.UUID, req *request.UpdateTicketRequest) (*response.TicketResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Open(ctx context.Context, userID uuid.UUID, req *request.CreateTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.TicketPriority(req.Priority)
	}

	now := time.Now().UTC()
	ticket := &entity.Ticket{
		Base:        entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		UserID:      userID,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Status:      entity.TicketOpen,
		Priority:    priority,
	}

	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info("Ticket opened",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("priority", string(priority)),
	)

	resp := response.TicketToResponse(ticket, nil)
	return &resp, nil
}

func (s *ticketService) Get(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID) (*response.TicketResponse, error) {
	ticket, err := s.ticketForCaller(ctx, userID, role, ticketID)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.TicketReply.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket, replies)
	return &resp, nil
}

func (s *ticketService) Reply(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID, req *request.ReplyTicketRequest) (*response.TicketReplyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ticket, err := s.ticketForCaller(ctx, userID, role, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == entity.TicketClosed {
		return nil, apperrors.New(apperrors.InvalidState, "ticket is closed")
	}

	reply := &entity.TicketReply{
		BaseSimple: entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now().UTC()},
		TicketID:   ticket.ID,
		UserID:     userID,
		Body:       req.Body,
	}

	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		if err := r.TicketReply.Create(ctx, reply); err != nil {
			return err
		}

		// Staff replies flip the ticket to answered; a follow-up from the
		// reporter reopens it.
		if role == entity.RoleAdmin {
			ticket.Status = entity.TicketAnswered
		} else {
			ticket.Status = entity.TicketOpen
		}
		ticket.UpdatedAt = time.Now().UTC()
		return r.Ticket.Update(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	if role == entity.RoleAdmin && ticket.UserID != userID {
		notify(ctx, s.repo, s.log, ticket.UserID, entity.NotificationSystem,
			"Support replied to your ticket",
			req.Body,
			nil)
	}

	resp := response.TicketReplyToResponse(reply)
	return &resp, nil
}

func (s *ticketService) Close(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID) error {
	ticket, err := s.ticketForCaller(ctx, userID, role, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status == entity.TicketClosed {
		return apperrors.New(apperrors.InvalidState, "ticket is already closed")
	}

	now := time.Now().UTC()
	ticket.Status = entity.TicketClosed
	ticket.ResolvedAt = &now
	ticket.UpdatedAt = now

	return s.repo.Ticket.Update(ctx, ticket)
}

func (s *ticketService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response.TicketResponse, error) {
	tickets, err := s.repo.Ticket.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]response.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, response.TicketToResponse(ticket, nil))
	}
	return items, nil
}

func (s *ticketService) ListAll(ctx context.Context, req *request.ListTicketsRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	status := entity.TicketStatus(req.Status)

	tickets, err := s.repo.Ticket.ListByStatus(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Ticket.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	items := make([]response.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, response.TicketToResponse(ticket, nil))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *ticketService) Update(ctx context.Context, ticketID uuid.UUID, req *request.UpdateTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.New(apperrors.NotFound, "ticket not found")
	}

	closing := false
	if req.Status != "" {
		status := entity.TicketStatus(req.Status)
		closing = status == entity.TicketClosed && ticket.Status != entity.TicketClosed
		ticket.Status = status
	}
	if req.Priority != "" {
		ticket.Priority = entity.TicketPriority(req.Priority)
	}
	if req.Resolution != nil {
		ticket.Resolution = req.Resolution
	}

	now := time.Now().UTC()
	if closing {
		ticket.ResolvedAt = &now
	}
	ticket.UpdatedAt = now

	if err := s.repo.Ticket.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info("Ticket updated",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("status", string(ticket.Status)),
		zap.String("priority", string(ticket.Priority)),
	)

	if closing {
		notify(ctx, s.repo, s.log, ticket.UserID, entity.NotificationSystem,
			"Ticket closed",
			fmt.Sprintf("Your ticket %q was closed by the support team.", ticket.Subject),
			nil)
	}

	resp := response.TicketToResponse(ticket, nil)
	return &resp, nil
}

func (s *ticketService) ticketForCaller(ctx context.Context, userID uuid.UUID, role entity.UserRole, ticketID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperrors.New(apperrors.NotFound, "ticket not found")
	}
	if ticket.UserID != userID && role != entity.RoleAdmin {
		return nil, apperrors.New(apperrors.Unauthorized, "ticket belongs to another user")
	}
	return ticket, nil
}
