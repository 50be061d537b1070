package customization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricingAgreement(t *testing.T) {
	t.Run("upfront agreement", func(t *testing.T) {
		a, err := NewPricingAgreement(decimal.NewFromInt(150), PaymentTypeUpfront, nil)
		require.NoError(t, err)
		assert.Equal(t, PaymentTypeUpfront, a.PaymentType)
		assert.True(t, a.DesignFee.Equal(decimal.NewFromInt(150)))
	})

	t.Run("zero fee is allowed", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.Zero, PaymentTypeHalfPayment, nil)
		require.NoError(t, err)
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(-1), PaymentTypeUpfront, nil)
		require.Error(t, err)
	})

	t.Run("unknown payment type is rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(10), PaymentType("installments"), nil)
		require.Error(t, err)
	})

	t.Run("milestones on a non-milestone plan are rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(10), PaymentTypeUpfront, []Milestone{
			{Description: "sketch", Amount: decimal.NewFromInt(10)},
		})
		require.Error(t, err)
	})
}

func TestNewPricingAgreement_Milestones(t *testing.T) {
	t.Run("milestone sum matching fee", func(t *testing.T) {
		a, err := NewPricingAgreement(decimal.NewFromInt(300), PaymentTypeMilestone, []Milestone{
			{Description: "sketch", Amount: decimal.NewFromInt(100)},
			{Description: "draft", Amount: decimal.NewFromInt(100)},
			{Description: "final", Amount: decimal.NewFromInt(100)},
		})
		require.NoError(t, err)
		assert.Len(t, a.Milestones, 3)
	})

	t.Run("sum within tolerance is accepted", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromFloat(100.00), PaymentTypeMilestone, []Milestone{
			{Description: "sketch", Amount: decimal.NewFromFloat(49.99)},
			{Description: "final", Amount: decimal.NewFromFloat(50.00)},
		})
		require.NoError(t, err)
	})

	t.Run("sum outside tolerance is rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromFloat(100.00), PaymentTypeMilestone, []Milestone{
			{Description: "sketch", Amount: decimal.NewFromFloat(49.00)},
			{Description: "final", Amount: decimal.NewFromFloat(50.00)},
		})
		require.Error(t, err)
	})

	t.Run("milestone plan requires milestones", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(100), PaymentTypeMilestone, nil)
		require.Error(t, err)
	})

	t.Run("milestone without description is rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(100), PaymentTypeMilestone, []Milestone{
			{Description: "", Amount: decimal.NewFromInt(100)},
		})
		require.Error(t, err)
	})

	t.Run("negative milestone amount is rejected", func(t *testing.T) {
		_, err := NewPricingAgreement(decimal.NewFromInt(100), PaymentTypeMilestone, []Milestone{
			{Description: "sketch", Amount: decimal.NewFromInt(150)},
			{Description: "refund", Amount: decimal.NewFromInt(-50)},
		})
		require.Error(t, err)
	})
}
