package service

import (
	"context"
	"fmt"

	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
)

// ContractService covers the contract transitions billing depends on.
type ContractService interface {
	// ActivateContract moves a PENDING contract to ACTIVE. A room holds at most
	// one ACTIVE contract, so activation fails while another is active.
	ActivateContract(ctx context.Context, actor Actor, id uuid.UUID) (*model.Contract, error)
}

type contractService struct {
	contracts repository.ContractRepository
	txManager repository.TransactionManager
	audit     auditWriter
}

func NewContractService(contracts repository.ContractRepository, audits repository.AuditRepository, txManager repository.TransactionManager) ContractService {
	return &contractService{contracts: contracts, txManager: txManager, audit: auditWriter{repo: audits}}
}

func (s *contractService) ActivateContract(ctx context.Context, actor Actor, id uuid.UUID) (*model.Contract, error) {
	var contract *model.Contract
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.contracts.FindByIDForUpdate(txCtx, id); err != nil {
			if repository.IsNotFound(err) {
				return apperror.NotFound("contract")
			}
			return fmt.Errorf("failed to lock contract: %w", err)
		}
		c, err := s.contracts.FindByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load contract: %w", err)
		}
		var motel *model.Motel
		if c.Room != nil {
			motel = c.Room.Motel
		}
		if err := authorizeManage(actor, motel); err != nil {
			return err
		}
		if c.Status != model.ContractPending {
			return apperror.Validation("status", "only PENDING contracts can be activated").
				WithDetail("status", c.Status)
		}

		busy, err := s.contracts.HasActiveForRoom(txCtx, c.RoomID, c.ID)
		if err != nil {
			return fmt.Errorf("failed to check active contracts: %w", err)
		}
		if busy {
			return apperror.Validation("room_id", "room already has an active contract")
		}

		if err := s.contracts.UpdateStatus(txCtx, c.ID, model.ContractActive); err != nil {
			return fmt.Errorf("failed to activate contract: %w", err)
		}
		c.Status = model.ContractActive
		contract = c
		return s.audit.write(txCtx, actor.ID(), model.ActionActivateContract, c.ID.String(), "", map[string]interface{}{
			"room_id": c.RoomID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}
