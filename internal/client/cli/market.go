package cli

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/client/config"
	"github.com/dmitrijs2005/notemarket/internal/filex"
	"github.com/dmitrijs2005/notemarket/internal/netx"
	"github.com/shopspring/decimal"
)

// downloadReport is a test seam for fetching exported reports.
var downloadReport = netx.DownloadPresignedURL

func (a *App) Listings(ctx context.Context) error {
	ls, err := a.client.ListListings(ctx)
	if err != nil {
		return a.fail(err)
	}
	printListings(a.out, ls)
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	ls, err := a.client.SearchListings(ctx, query)
	if err != nil {
		return a.fail(err)
	}
	printListings(a.out, ls)
	return nil
}

func (a *App) View(ctx context.Context, id string) error {
	l, err := a.client.GetListing(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printListing(a.out, l)
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	ls, err := a.client.MyListings(ctx)
	if err != nil {
		return a.fail(err)
	}
	printListings(a.out, ls)
	return nil
}

func (a *App) Sell(ctx context.Context) error {
	var in api.ListingInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "-Enter title", a.out); err != nil {
		return a.fail(err)
	}
	if in.Description, err = getSimpleText(a.reader, "-Enter short description", a.out); err != nil {
		return a.fail(err)
	}
	if in.Content, err = getMultiline(a.reader, "-Enter note content", a.out); err != nil {
		return a.fail(err)
	}

	price, err := getSimpleText(a.reader, "-Enter price", a.out)
	if err != nil {
		return a.fail(err)
	}
	if in.Price, err = decimal.NewFromString(price); err != nil {
		return a.fail(fmt.Errorf("invalid price %q: %w", price, err))
	}

	if in.SellerAddress, err = getSimpleText(a.reader, "-Enter your payout address", a.out); err != nil {
		return a.fail(err)
	}

	l, err := a.client.CreateListing(ctx, in)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Listed %q as %s\n", l.Title, l.ID)
	return nil
}

func (a *App) Delist(ctx context.Context, id string) error {
	if err := a.client.DeleteListing(ctx, id); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Listing removed from the marketplace")
	return nil
}

// Buy shows where to pay, then redeems the caller's transaction hash for
// the listing.
func (a *App) Buy(ctx context.Context, id string) error {
	l, err := a.client.GetListing(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	address, err := a.client.SellerAddress(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Send %s to %s, then enter the transaction details.\n", l.Price.String(), address)

	txHash, err := getSimpleText(a.reader, "-Enter transaction hash", a.out)
	if err != nil {
		return a.fail(err)
	}
	buyerAddress, err := getSimpleText(a.reader, "-Enter the address you paid from", a.out)
	if err != nil {
		return a.fail(err)
	}

	ok, err := getConfirm(a.reader, fmt.Sprintf("Redeem %s for %q?", txHash, l.Title), a.out)
	if err != nil {
		return a.fail(err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Purchase cancelled")
		return nil
	}

	receipt, err := a.client.Purchase(ctx, api.PurchaseRequest{
		ListingID:    id,
		TxHash:       txHash,
		BuyerAddress: buyerAddress,
		Amount:       l.Price,
	})
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "Purchased %q for %s. Your copy is note %s.\n", l.Title, receipt.Price.String(), receipt.NoteID)
	return nil
}

func (a *App) Purchases(ctx context.Context) error {
	ls, err := a.client.MyPurchases(ctx)
	if err != nil {
		return a.fail(err)
	}
	printListings(a.out, ls)
	return nil
}

func (a *App) History(ctx context.Context) error {
	rs, err := a.client.BuyerHistory(ctx)
	if err != nil {
		return a.fail(err)
	}
	printHistory(a.out, rs)
	return nil
}

func (a *App) Sales(ctx context.Context) error {
	rs, err := a.client.SellerHistory(ctx)
	if err != nil {
		return a.fail(err)
	}
	printHistory(a.out, rs)
	return nil
}

func (a *App) Export(ctx context.Context) error {
	rep, err := a.client.ExportSales(ctx)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Exported %d sales to %s\n", rep.Rows, rep.Key)

	data, err := downloadReport(ctx, rep.URL)
	if err != nil {
		fmt.Fprintf(a.out, "Download it later from: %s\n", rep.URL)
		return a.fail(err)
	}
	dir := a.config.ReportsDir
	if dir == "" {
		dir = config.DefaultReportsDir
	}
	saved, err := filex.SaveFile(dir, path.Base(rep.Key), data)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Saved to %s\n", saved)
	return nil
}
