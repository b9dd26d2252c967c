package types

import (
	"context"
	"strings"
	"testing"
	"time"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "0"},
		{input: "   ", want: "0"},
		{input: "12.5", want: "12.5"},
		{input: " 7 ", want: "7"},
		{input: "0.005", want: "0.005"},
		{input: "-3", want: "-3"},
		{input: "12,50", want: "0"},
		{input: "abc", want: "0"},
		{input: "1.2.3", want: "0"},
		{input: "1e15", want: "1000000000000000"},
		{input: "1e200000000", want: "0"},
		{input: "1e-200000000", want: "0"},
		{input: "0.00000000001", want: "0"},
		{input: strings.Repeat("9", 33), want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.input).String())
		})
	}
}

func TestParseAmountHugeExponentRoundsQuickly(t *testing.T) {
	done := make(chan string, 1)
	go func() {
		done <- RoundMoney(ParseAmount("1e200000000")).StringFixed(2)
	}()

	select {
	case got := <-done:
		assert.Equal(t, "0.00", got)
	case <-time.After(2 * time.Second):
		t.Fatal("rounding an out-of-range amount did not finish")
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "0.13", RoundMoney(ParseAmount("0.125")).StringFixed(2))
	assert.Equal(t, "0.12", RoundMoney(ParseAmount("0.124999")).StringFixed(2))
	assert.Equal(t, "-0.13", RoundMoney(ParseAmount("-0.125")).StringFixed(2))
	assert.Equal(t, "10.00", RoundMoney(ParseAmount("9.995")).StringFixed(2))
}

func TestParseChargeMode(t *testing.T) {
	tests := map[string]ChargeMode{
		"":           ChargeModePercentage,
		"%":          ChargeModePercentage,
		"percentage": ChargeModePercentage,
		"Fixed":      ChargeModeFixed,
		" FIXED ":    ChargeModeFixed,
	}
	for input, want := range tests {
		mode := ParseChargeMode(input)
		assert.Equal(t, want, mode, input)
		assert.NoError(t, mode.Validate())
	}

	err := ParseChargeMode("per item").Validate()
	assert.True(t, ierr.IsValidation(err))
}

func TestParsePaymentType(t *testing.T) {
	assert.Equal(t, PaymentTypeCash, ParsePaymentType(""))
	assert.Equal(t, PaymentTypeCheque, ParsePaymentType(" cheque"))
	assert.Equal(t, PaymentTypeOnline, ParsePaymentType("Online"))
	assert.True(t, ierr.IsValidation(ParsePaymentType("voucher").Validate()))

	assert.False(t, PaymentTypeCash.HasReference())
	assert.False(t, PaymentTypeCard.HasReference())
	assert.True(t, PaymentTypeCheque.HasReference())
	assert.True(t, PaymentTypeOnline.HasReference())
}

func TestPrintFormatValidate(t *testing.T) {
	for _, f := range []PrintFormat{PrintFormatFullA4, PrintFormatA4, PrintFormatA5, PrintFormatShort} {
		assert.NoError(t, f.Validate(), f.String())
	}
	assert.True(t, ierr.IsValidation(PrintFormat("A3_INVOICE").Validate()))
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, DefaultOperatorID, GetOperatorID(ctx))
	assert.Equal(t, DefaultCounterID, GetCounterID(ctx))

	ctx = context.WithValue(ctx, CtxOperatorID, "cashier_9")
	ctx = context.WithValue(ctx, CtxCounterID, "counter_3")
	assert.Equal(t, "cashier_9", GetOperatorID(ctx))
	assert.Equal(t, "counter_3", GetCounterID(ctx))
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE)
	assert.True(t, strings.HasPrefix(id, "inv_"))
	assert.NotEqual(t, id, GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE))
	assert.Len(t, GenerateUUIDWithPrefix(""), 26)
}
