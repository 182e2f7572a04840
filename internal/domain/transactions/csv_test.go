package transactions

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerpro/internal/core/types"
)

func TestImportSalesCSV_HappyPath(t *testing.T) {
	env := newTestEnv(t)

	csv := fmt.Sprintf(
		"date,entity_id,item,quantity,amount,gst\n"+
			"2026-08-01,%s,Soap,3,25,18\n"+
			"2026-08-02,%s,Shampoo,2,120,18\n",
		env.entityID, env.entityID,
	)

	result, err := env.svc.ImportSalesCSV(context.Background(), env.userID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, 0, result.ErrorCount)

	items, err := env.svc.List(context.Background(), env.userID, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestImportSalesCSV_ForcesSaleType(t *testing.T) {
	env := newTestEnv(t)

	csv := fmt.Sprintf(
		"date,entity_id,item,qty,amount,type\n"+
			"2026-08-01,%s,Soap,1,25,purchase\n",
		env.entityID,
	)

	result, err := env.svc.ImportSalesCSV(context.Background(), env.userID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, result.ImportedCount)

	items, err := env.svc.List(context.Background(), env.userID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, TypeSale, items[0].Type, "imports are sales regardless of the declared type")
}

func TestImportSalesCSV_RowFailuresDoNotAbortBatch(t *testing.T) {
	env := newTestEnv(t)

	csv := fmt.Sprintf(
		"date,entity_id,item,qty,amount\n"+
			"2026-08-01,%s,Soap,1,25\n"+
			",%s,Missing Date,1,25\n"+
			"2026-08-03,%s,Shampoo,2,120\n",
		env.entityID, env.entityID, env.entityID,
	)

	result, err := env.svc.ImportSalesCSV(context.Background(), env.userID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row, "row numbers count the header, matching the spreadsheet")
}

func TestImportSalesCSV_MissingQtyDefaultsToOne(t *testing.T) {
	env := newTestEnv(t)

	csv := fmt.Sprintf(
		"date,entity_id,item,amount\n"+
			"2026-08-01,%s,Soap,25\n",
		env.entityID,
	)

	result, err := env.svc.ImportSalesCSV(context.Background(), env.userID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, result.ImportedCount)

	items, err := env.svc.List(context.Background(), env.userID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Qty.Equal(types.NewMoney(1)))
}

func TestImportSalesCSV_EmptyFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ImportSalesCSV(context.Background(), env.userID, strings.NewReader("date,item\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV has no rows.")
}
