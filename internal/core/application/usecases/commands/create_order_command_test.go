package commands_test

import (
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		deadline := time.Now().Add(48 * time.Hour)

		cmd, err := commands.NewCreateOrderCommand(validID, 42, "Acme Interiors", &deadline, "notes")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(validID))
		assert.Equal(t, int64(42), cmd.ClientID())
		assert.Equal(t, "Acme Interiors", cmd.ClientName())
		assert.Equal(t, &deadline, cmd.Deadline())
		assert.Equal(t, "notes", cmd.Notes())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCreateOrderCommand(invalidID, 42, "Acme", nil, "")

		require.Error(t, err)
	})

	t.Run("should fail with non-positive client id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(validID, 0, "Acme", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with blank client name", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(validID, 42, "   ", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation for default constructed command", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
