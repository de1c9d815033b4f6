package commands

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand is not constructed, use NewCreateShipmentCommand")

type CreateShipmentCommand struct {
	client      string
	quantity    int
	destination string

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(client string, quantity int, destination string) (CreateShipmentCommand, error) {
	err := errors.Join(
		validateCommandClient(client),
		validateCommandQuantity(quantity),
		validateCommandDestination(destination),
	)
	if err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		client:      client,
		quantity:    quantity,
		destination: destination,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Client() string {
	return c.client
}

func (c CreateShipmentCommand) Quantity() int {
	return c.quantity
}

func (c CreateShipmentCommand) Destination() string {
	return c.destination
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func validateCommandClient(client string) error {
	if strings.TrimSpace(client) == "" {
		return errs.NewValueIsRequiredError("client")
	}
	return nil
}

func validateCommandQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return nil
}

func validateCommandDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	return nil
}
