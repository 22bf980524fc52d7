package service

import (
	"strconv"
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/numwords"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/printer"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

// InvoiceDocument lays out an issued invoice for an 80mm (or narrower) receipt.
// The invoice is validated first and never modified.
func InvoiceDocument(invoice *entity.Invoice, customer *entity.Customer, header entity.ResortHeader, width int) (*printer.Document, error) {
	if err := validateInvoice(invoice, customer); err != nil {
		return nil, err
	}
	words, err := numwords.AmountToWords(invoice.GrandTotal)
	if err != nil {
		return nil, err
	}

	doc := printer.NewDocument(width)
	w := doc.Width()

	doc.Title(header.Name)
	for _, l := range header.AddressLines {
		doc.Center(l)
	}
	if header.Phone != "" {
		doc.Center("Ph: " + header.Phone)
	}
	if header.GSTIN != "" {
		doc.Center("GSTIN: " + header.GSTIN)
	}

	doc.Separator('-').
		Title(invoiceTitle(invoice.InvoiceClass)).
		Separator('-')

	doc.KeyValue("Bill No: "+invoice.BillNo, "Date: "+invoice.IssuedAt.Format(dateLayout)).
		KeyValue("Guest: "+customer.Name, "Time: "+invoice.IssuedAt.Format(timeLayout))
	if customer.RoomNo != nil && *customer.RoomNo != "" {
		doc.Text("Room: " + *customer.RoomNo)
	}

	cols := invoiceColumns(w)
	doc.Separator('-').
		Row(cols, "Particulars", "Rate", "Qty", "Amount").
		Separator('-')

	totals := invoice.ServiceTotals()
	for _, l := range invoice.Lines {
		sub := strconv.FormatInt(totals[l.Service].Subtotal(), 10)
		doc.Row(cols, l.Service.Label(), sub, "1", sub)
	}

	doc.Separator('-')
	if invoice.TotalTax > 0 {
		doc.KeyValue("Tax", strconv.FormatInt(invoice.TotalTax, 10))
	}
	doc.KeyValue("TOTAL", strconv.FormatInt(invoice.GrandTotal, 10)).
		Separator('-').
		Wrap("Rupees " + words).
		Blank().
		Right("Authorised Signatory")

	return doc, nil
}

// RenderInvoiceText returns the plain-text form of an invoice
func RenderInvoiceText(invoice *entity.Invoice, customer *entity.Customer, header entity.ResortHeader, width int) (string, error) {
	doc, err := InvoiceDocument(invoice, customer, header, width)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// KitchenTicketDocument lays out a KOT for the kitchen or bar printer.
func KitchenTicketDocument(ticket entity.KitchenTicket, width int) (*printer.Document, error) {
	if !ticket.Service.Valid() {
		return nil, apperror.NewMalformedRecord("kitchen ticket has no valid service")
	}
	if ticket.Timestamp.IsZero() {
		return nil, apperror.NewMalformedRecord("kitchen ticket has no timestamp")
	}
	if len(ticket.Items) == 0 {
		return nil, apperror.NewMalformedRecord("kitchen ticket has no items")
	}

	doc := printer.NewDocument(width)
	doc.Title("KOT - " + ticket.Service.Label()).
		Separator('-')

	var location []string
	if ticket.TableNo != "" {
		location = append(location, "Table: "+ticket.TableNo)
	}
	if ticket.RoomNo != "" {
		location = append(location, "Room: "+ticket.RoomNo)
	}
	if len(location) > 0 {
		doc.Text(strings.Join(location, "  "))
	}

	doc.KeyValue("Date: "+ticket.Timestamp.Format(dateLayout), "Time: "+ticket.Timestamp.Format(timeLayout)).
		Separator('-').
		KeyValue("No  Item", "Qty").
		Separator('-')

	total := 0
	for i, it := range ticket.Items {
		if it.Name == "" || it.Quantity <= 0 {
			return nil, apperror.NewMalformedRecord("kitchen ticket line " + strconv.Itoa(i+1) + " is incomplete")
		}
		doc.KeyValue(padRight(strconv.Itoa(i+1), 3)+" "+it.Name, strconv.Itoa(it.Quantity))
		total += it.Quantity
	}

	doc.Separator('-').
		KeyValue("Total Items", strconv.Itoa(total))
	return doc, nil
}

// RenderKitchenTicket returns the plain-text form of a KOT
func RenderKitchenTicket(ticket entity.KitchenTicket, width int) (string, error) {
	doc, err := KitchenTicketDocument(ticket, width)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

func invoiceColumns(width int) []printer.Column {
	return []printer.Column{
		{Width: width - 22, Align: printer.AlignLeft},
		{Width: 8, Align: printer.AlignRight},
		{Width: 4, Align: printer.AlignRight},
		{Width: 10, Align: printer.AlignRight},
	}
}

func invoiceTitle(class string) string {
	if class == "" || strings.EqualFold(class, "General") {
		return "BILL"
	}
	return strings.ToUpper(class) + " BILL"
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func validateInvoice(invoice *entity.Invoice, customer *entity.Customer) error {
	switch {
	case invoice == nil:
		return apperror.NewMalformedRecord("invoice is missing")
	case customer == nil:
		return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " has no customer")
	case invoice.BillNo == "":
		return apperror.NewMalformedRecord("invoice has no bill number")
	case invoice.IssuedAt.IsZero():
		return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " has no issue time")
	case len(invoice.Lines) == 0:
		return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " has no lines")
	case invoice.GrandTotal < 0 || invoice.TotalTax < 0:
		return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " has negative totals")
	}

	var amount, tax int64
	seen := make(map[int]bool, len(invoice.Lines))
	for _, l := range invoice.Lines {
		if !l.Service.Valid() {
			return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " has a line with an unknown service")
		}
		if seen[int(l.Service)] {
			return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " lists " + l.Service.String() + " twice")
		}
		seen[int(l.Service)] = true
		amount += l.Amount
		tax += l.Tax
	}
	if amount != invoice.GrandTotal || tax != invoice.TotalTax {
		return apperror.NewMalformedRecord("invoice " + invoice.BillNo + " lines do not add up to its totals")
	}
	return nil
}
