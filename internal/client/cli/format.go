package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/api"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printListings(w io.Writer, ls []*api.Listing) {
	if len(ls) == 0 {
		fmt.Fprintln(w, "No listings.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSELLER\tVIEWS\tSOLD\t")
	for _, l := range ls {
		title := l.Title
		if l.OwnedByViewer {
			title += " [yours]"
		} else if l.Entitled {
			title += " [owned]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t\n", l.ID, title, l.Price.String(), l.SellerAddress, l.ViewCount, l.PurchaseCount)
	}
	_ = tw.Flush()
}

func printListing(w io.Writer, l *api.Listing) {
	fmt.Fprintf(w, "%s\n", l.Title)
	fmt.Fprintf(w, "  id:       %s\n", l.ID)
	fmt.Fprintf(w, "  price:    %s\n", l.Price.String())
	fmt.Fprintf(w, "  seller:   %s\n", l.SellerAddress)
	fmt.Fprintf(w, "  status:   %s\n", l.Status)
	fmt.Fprintf(w, "  views:    %d, sold: %d\n", l.ViewCount, l.PurchaseCount)
	if l.Description != "" {
		fmt.Fprintf(w, "\n%s\n", l.Description)
	}
	if l.Entitled {
		fmt.Fprintf(w, "\n%s\n", l.FullContent)
		return
	}
	fmt.Fprintf(w, "\n%s\n\n(buy %s to read the full note)\n", l.Preview, l.ID)
}

func printHistory(w io.Writer, rs []*api.PurchaseRecord) {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No purchases.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tLISTING\tPRICE\tTX\tBUYER\tSELLER\t")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			formatTime(r.PurchasedAt), r.ListingTitle, r.Price.String(), r.TxHash, r.BuyerAddress, r.SellerAddress)
	}
	_ = tw.Flush()
}

func printNotes(w io.Writer, ns []*api.Note) {
	if len(ns) == 0 {
		fmt.Fprintln(w, "No notes.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED\t")
	for _, n := range ns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", n.ID, n.Title, formatTime(n.UpdatedAt))
	}
	_ = tw.Flush()
}

func printTransactions(w io.Writer, ts []*api.Transaction) {
	if len(ts) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTX\tFROM\tTO\tAMOUNT\tNOTE\t")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			formatTime(t.CreatedAt), t.TxHash, t.SenderAddress, t.RecipientAddress, t.Amount.String(), t.NoteTitle)
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
