package grpc

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/server/services"
)

func (s *GRPCServer) RecordTransaction(ctx context.Context, req *api.RecordTransactionRequest) (*api.TransactionResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Transactions.Record(ctx, userID, services.TransactionInput{
		TxHash:           req.TxHash,
		SenderAddress:    req.SenderAddress,
		RecipientAddress: req.RecipientAddress,
		Amount:           req.Amount,
		NoteID:           req.NoteID,
		NetworkID:        req.NetworkID,
		Metadata:         req.Metadata,
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.TransactionResponse{Transaction: toTransaction(v)}, nil
}

func (s *GRPCServer) ListTransactions(ctx context.Context, req *api.Empty) (*api.TransactionsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Transactions.ListMine(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toTransactions(views), nil
}

func (s *GRPCServer) GetTransaction(ctx context.Context, req *api.TransactionByHash) (*api.TransactionResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Transactions.GetByHash(ctx, req.TxHash, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.TransactionResponse{Transaction: toTransaction(v)}, nil
}

func (s *GRPCServer) NoteTransactions(ctx context.Context, req *api.ByID) (*api.TransactionsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Transactions.ListForNote(ctx, req.ID, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toTransactions(views), nil
}
