package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjs243/money-manager/internal/model"
)

const mintSample = `Date,Merchant,Description,Amount,Transaction Type,Category,Account Name
1/15/2025,NETFLIX.COM,monthly plan,15.49,debit,Entertainment,chk-1
2025-01-20,ACME PAYROLL,salary,2300.00,credit,Income,chk-1
`

func TestMintParser(t *testing.T) {
	txns, err := (&MintParser{}).Parse(strings.NewReader(mintSample))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Debits are signed negative regardless of the export's sign.
	assert.Equal(t, "NETFLIX.COM", txns[0].Merchant)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-15.49")))
	assert.True(t, txns[0].IsDebit())
	assert.True(t, txns[0].Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))

	// ISO date fallback, credits stay positive.
	assert.True(t, txns[1].Amount.Equal(decimal.RequireFromString("2300.00")))
	assert.True(t, txns[1].Date.Equal(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))
}

func TestMintParser_UnknownType(t *testing.T) {
	in := "Date,Merchant,Description,Amount,Transaction Type,Category,Account Name\n" +
		"1/15/2025,SHOP,,5.00,transfer,,chk-1\n"
	_, err := (&MintParser{}).Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer")
}

func TestMintParser_EmptyFile(t *testing.T) {
	txns, err := (&MintParser{}).Parse(strings.NewReader("Date,Merchant,Description,Amount,Transaction Type,Category,Account Name\n"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestDedupe(t *testing.T) {
	d := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	existing := []model.Transaction{
		{Date: d, Merchant: "NETFLIX.COM", Amount: decimal.RequireFromString("-15.49"), AccountID: "chk-1"},
	}
	incoming := []model.Transaction{
		// exact duplicate of an existing row
		{Date: d, Merchant: "NETFLIX.COM", Amount: decimal.RequireFromString("-15.49"), AccountID: "chk-1"},
		// same merchant and date, different account: kept
		{Date: d, Merchant: "NETFLIX.COM", Amount: decimal.RequireFromString("-15.49"), AccountID: "chk-2"},
		// duplicate within the incoming batch itself: kept once
		{Date: d, Merchant: "SPOTIFY", Amount: decimal.RequireFromString("-11.99"), AccountID: "chk-1"},
		{Date: d, Merchant: "SPOTIFY", Amount: decimal.RequireFromString("-11.99"), AccountID: "chk-1"},
	}

	out := Dedupe(existing, incoming)
	require.Len(t, out, 2)
	assert.Equal(t, "chk-2", out[0].AccountID)
	assert.Equal(t, "SPOTIFY", out[1].Merchant)
}

func TestScanAndMarkProcessed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "export.csv"), []byte(mintSample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "notes.txt"), []byte("ignore me"), 0o644))

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1, "only CSVs are picked up")
	assert.Equal(t, "export.csv", files[0].Name)

	require.NoError(t, MarkProcessed(root, "export.csv"))

	files, err = Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.FileExists(t, filepath.Join(root, "import", "processed", "export.csv"))
}

func TestScan_MissingDirIsEmpty(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r.Get("mint"))
	assert.Equal(t, "mint", r.Get("MINT").Format())
	assert.Nil(t, r.Get("ofx"))
}
