package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

func sampleInvoice() (*entity.Invoice, *entity.Customer) {
	room := "101"
	customer := &entity.Customer{ID: uuid.New(), Name: "Asha Menon", Phone: "9800000001", RoomNo: &room}
	invoice := &entity.Invoice{
		ID:           uuid.New(),
		BillNo:       "R-12",
		InvoiceClass: "General",
		CustomerID:   customer.ID,
		GrandTotal:   2550,
		TotalTax:     50,
		IssuedAt:     time.Date(2024, time.March, 9, 20, 15, 0, 0, time.UTC),
		Lines: []entity.InvoiceLine{
			{Service: enum.ServiceBakery, Amount: 500},
			{Service: enum.ServiceRestaurant, Amount: 1050, Tax: 50},
			{Service: enum.ServiceSpa, Amount: 1000},
		},
	}
	return invoice, customer
}

func findLine(t *testing.T, text, prefix string) string {
	t.Helper()
	for _, l := range strings.Split(text, "\n") {
		if strings.HasPrefix(l, prefix) {
			return l
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, text)
	return ""
}

func TestRenderInvoiceText_Layout(t *testing.T) {
	invoice, customer := sampleInvoice()
	header := entity.ResortHeader{
		Name:         "Green Valley Resort",
		AddressLines: []string{"NH 47, Kumily", "Kerala 685509"},
		Phone:        "04869 222 333",
		GSTIN:        "32ABCDE1234F1Z5",
	}

	text, err := RenderInvoiceText(invoice, customer, header, 48)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 48, l)
	}
	assert.Equal(t, "Green Valley Resort", strings.TrimSpace(lines[0]))
	assert.Equal(t, "GSTIN: 32ABCDE1234F1Z5", strings.TrimSpace(lines[4]))
	assert.Equal(t, strings.Repeat("-", 48), lines[5])
	assert.Equal(t, "BILL", strings.TrimSpace(lines[6]))

	bill := findLine(t, text, "Bill No:")
	assert.True(t, strings.HasSuffix(bill, "Date: 09/03/2024"), bill)
	assert.Len(t, bill, 48)
	assert.True(t, strings.HasSuffix(findLine(t, text, "Guest: Asha Menon"), "Time: 20:15"))
	assert.Equal(t, "Room: 101", findLine(t, text, "Room:"))

	assert.Equal(t, "Particulars                   Rate Qty    Amount", findLine(t, text, "Particulars"))
	assert.Equal(t, "Restaurant                    1000   1      1000", findLine(t, text, "Restaurant"))
	assert.Equal(t, "Bakery                         500   1       500", findLine(t, text, "Bakery"))

	assert.Equal(t, "Tax"+strings.Repeat(" ", 43)+"50", findLine(t, text, "Tax"))
	assert.Contains(t, text, "Rupees Two Thousand Five Hundred Fifty Only")
	assert.True(t, strings.HasSuffix(text, strings.Repeat(" ", 28)+"Authorised Signatory\n"))
}

func TestRenderInvoiceText_TotalLineReparsesToGrandTotal(t *testing.T) {
	invoice, customer := sampleInvoice()
	for _, width := range []int{32, 48} {
		text, err := RenderInvoiceText(invoice, customer, entity.ResortHeader{Name: "Resort"}, width)
		require.NoError(t, err)

		fields := strings.Fields(findLine(t, text, "TOTAL"))
		require.Len(t, fields, 2)
		total, err := strconv.ParseInt(fields[1], 10, 64)
		require.NoError(t, err)
		assert.Equal(t, invoice.GrandTotal, total, "width %d", width)
	}
}

func TestRenderInvoiceText_BarTitleAndNoTaxLineWhenUntaxed(t *testing.T) {
	invoice, customer := sampleInvoice()
	invoice.InvoiceClass = "Bar"
	invoice.Lines = []entity.InvoiceLine{{Service: enum.ServiceBar, Amount: 1180, Tax: 180}}
	invoice.GrandTotal, invoice.TotalTax = 1180, 180

	text, err := RenderInvoiceText(invoice, customer, entity.ResortHeader{Name: "Resort"}, 48)
	require.NoError(t, err)
	assert.Contains(t, text, "BAR BILL")
	assert.Equal(t, "Bar                           1000   1      1000", findLine(t, text, "Bar "))

	invoice.Lines = []entity.InvoiceLine{{Service: enum.ServiceBar, Amount: 1000}}
	invoice.GrandTotal, invoice.TotalTax = 1000, 0
	text, err = RenderInvoiceText(invoice, customer, entity.ResortHeader{Name: "Resort"}, 48)
	require.NoError(t, err)
	assert.NotContains(t, text, "\nTax ")
}

func TestRenderInvoiceText_DoesNotMutateInput(t *testing.T) {
	invoice, customer := sampleInvoice()
	before := *invoice
	beforeLines := append([]entity.InvoiceLine(nil), invoice.Lines...)

	_, err := RenderInvoiceText(invoice, customer, entity.ResortHeader{}, 48)
	require.NoError(t, err)
	assert.Equal(t, before.GrandTotal, invoice.GrandTotal)
	assert.Equal(t, beforeLines, invoice.Lines)
}

func TestRenderInvoiceText_MalformedRecords(t *testing.T) {
	cases := map[string]func(*entity.Invoice, **entity.Customer){
		"no bill number":  func(i *entity.Invoice, _ **entity.Customer) { i.BillNo = "" },
		"no issue time":   func(i *entity.Invoice, _ **entity.Customer) { i.IssuedAt = time.Time{} },
		"no lines":        func(i *entity.Invoice, _ **entity.Customer) { i.Lines = nil },
		"bad service":     func(i *entity.Invoice, _ **entity.Customer) { i.Lines[0].Service = enum.Service(42) },
		"totals mismatch": func(i *entity.Invoice, _ **entity.Customer) { i.GrandTotal++ },
		"tax mismatch":    func(i *entity.Invoice, _ **entity.Customer) { i.TotalTax = 0 },
		"no customer":     func(_ *entity.Invoice, c **entity.Customer) { *c = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			invoice, customer := sampleInvoice()
			mutate(invoice, &customer)
			_, err := RenderInvoiceText(invoice, customer, entity.ResortHeader{}, 48)
			assert.True(t, apperror.Is(err, apperror.KindMalformedRecord), "got %v", err)
		})
	}

	_, err := RenderInvoiceText(nil, &entity.Customer{}, entity.ResortHeader{}, 48)
	assert.True(t, apperror.Is(err, apperror.KindMalformedRecord))
}

func TestRenderKitchenTicket(t *testing.T) {
	ticket := entity.KitchenTicket{
		Service:   enum.ServiceRestaurant,
		TableNo:   "T4",
		RoomNo:    "204",
		Timestamp: time.Date(2024, time.March, 9, 13, 5, 0, 0, time.UTC),
		Items: []entity.KitchenTicketItem{
			{Name: "Appam", Quantity: 4},
			{Name: "Vegetable Stew", Quantity: 2},
		},
	}

	text, err := RenderKitchenTicket(ticket, 32)
	require.NoError(t, err)

	want := strings.Join([]string{
		"        KOT - Restaurant",
		strings.Repeat("-", 32),
		"Table: T4  Room: 204",
		"Date: 09/03/2024     Time: 13:05",
		strings.Repeat("-", 32),
		"No  Item                     Qty",
		strings.Repeat("-", 32),
		"1   Appam                      4",
		"2   Vegetable Stew             2",
		strings.Repeat("-", 32),
		"Total Items                    6",
	}, "\n") + "\n"
	assert.Equal(t, want, text)
}

func TestRenderKitchenTicket_Malformed(t *testing.T) {
	_, err := RenderKitchenTicket(entity.KitchenTicket{Service: enum.ServiceBar, Timestamp: fixedNow}, 48)
	assert.True(t, apperror.Is(err, apperror.KindMalformedRecord))

	_, err = RenderKitchenTicket(entity.KitchenTicket{
		Service:   enum.ServiceBar,
		Timestamp: fixedNow,
		Items:     []entity.KitchenTicketItem{{Name: "Rum", Quantity: 0}},
	}, 48)
	assert.True(t, apperror.Is(err, apperror.KindMalformedRecord))
}
