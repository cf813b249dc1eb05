package grpc

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/api"
)

func (s *GRPCServer) CreateNote(ctx context.Context, req *api.NoteInput) (*api.NoteResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Notes.Create(ctx, userID, req.Title, req.Content)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.NoteResponse{Note: toNote(n)}, nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, req *api.Empty) (*api.NotesResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.services.Notes.List(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toNotes(notes), nil
}

func (s *GRPCServer) GetNote(ctx context.Context, req *api.ByID) (*api.NoteResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Notes.Get(ctx, req.ID, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.NoteResponse{Note: toNote(n)}, nil
}

func (s *GRPCServer) UpdateNote(ctx context.Context, req *api.UpdateNoteRequest) (*api.NoteResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Notes.Update(ctx, req.ID, userID, req.Note.Title, req.Note.Content)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.NoteResponse{Note: toNote(n)}, nil
}

func (s *GRPCServer) DeleteNote(ctx context.Context, req *api.ByID) (*api.Empty, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Notes.Delete(ctx, req.ID, userID); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) SearchNotes(ctx context.Context, req *api.Query) (*api.NotesResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.services.Notes.Search(ctx, userID, req.Query)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toNotes(notes), nil
}
