package grpc

import (
	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/services"
)

func toListing(v *services.ListingView) *api.Listing {
	return &api.Listing{
		ID:            v.ID,
		SellerID:      v.SellerID,
		Title:         v.Title,
		Description:   v.Description,
		Preview:       v.Preview,
		FullContent:   v.FullContent,
		Entitled:      v.Entitled,
		Price:         v.Price,
		SellerAddress: v.SellerAddress,
		Status:        string(v.Status),
		ViewCount:     v.ViewCount,
		PurchaseCount: v.PurchaseCount,
		OwnedByViewer: v.OwnedByViewer,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toListings(views []*services.ListingView) *api.ListingsResponse {
	out := make([]*api.Listing, 0, len(views))
	for _, v := range views {
		out = append(out, toListing(v))
	}
	return &api.ListingsResponse{Listings: out}
}

func fromListingInput(in api.ListingInput) services.ListingInput {
	return services.ListingInput{
		Title:         in.Title,
		Description:   in.Description,
		Content:       in.Content,
		Price:         in.Price,
		SellerAddress: in.SellerAddress,
	}
}

func toHistory(views []*services.PurchaseHistoryView) *api.HistoryResponse {
	out := make([]*api.PurchaseRecord, 0, len(views))
	for _, v := range views {
		out = append(out, &api.PurchaseRecord{
			ID:            v.ID,
			ListingID:     v.ListingID,
			ListingTitle:  v.ListingTitle,
			Price:         v.Price,
			TxHash:        v.TxHash,
			BuyerAddress:  v.BuyerAddress,
			SellerAddress: v.SellerAddress,
			PurchasedAt:   v.PurchasedAt,
		})
	}
	return &api.HistoryResponse{Purchases: out}
}

func toNote(n *models.Note) *api.Note {
	return &api.Note{ID: n.ID, Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt}
}

func toNotes(notes []*models.Note) *api.NotesResponse {
	out := make([]*api.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n))
	}
	return &api.NotesResponse{Notes: out}
}

func toTransaction(v *services.TransactionView) *api.Transaction {
	return &api.Transaction{
		ID:               v.ID,
		TxHash:           v.TxHash,
		SenderAddress:    v.SenderAddress,
		RecipientAddress: v.RecipientAddress,
		Amount:           v.Amount,
		NoteID:           v.NoteID,
		NoteTitle:        v.NoteTitle,
		NetworkID:        v.NetworkID,
		Metadata:         v.Metadata,
		CreatedAt:        v.CreatedAt,
	}
}

func toTransactions(views []*services.TransactionView) *api.TransactionsResponse {
	out := make([]*api.Transaction, 0, len(views))
	for _, v := range views {
		out = append(out, toTransaction(v))
	}
	return &api.TransactionsResponse{Transactions: out}
}
