package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// DeliveryType says whether the customer collects the order or a courier
// brings it.
type DeliveryType int

const (
	DeliveryTypeUnknown DeliveryType = iota
	Pickup
	Delivery
)

// DeliveryTypes lists the selectable delivery types.
func DeliveryTypes() []DeliveryType {
	return []DeliveryType{Pickup, Delivery}
}

func (t DeliveryType) String() string {
	switch t {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	case DeliveryTypeUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseDeliveryType maps a wire name back to a DeliveryType.
func ParseDeliveryType(s string) (DeliveryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	}
	return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryType",
		fmt.Errorf("%q is not a valid delivery type", s),
	)
}

func (t DeliveryType) Validate() error {
	if t != Pickup && t != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("deliveryType", fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

// DeliveryDetails is the delivery snapshot taken at placement. Address, phone
// and region are mandatory for Delivery and optional for Pickup.
type DeliveryDetails struct {
	Type    DeliveryType
	Address string
	Phone   string
	Region  string
}

func (d DeliveryDetails) normalized() DeliveryDetails {
	return DeliveryDetails{
		Type:    d.Type,
		Address: strings.TrimSpace(d.Address),
		Phone:   strings.TrimSpace(d.Phone),
		Region:  strings.TrimSpace(d.Region),
	}
}

// Validate checks the fields required by the delivery type.
func (d DeliveryDetails) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if d.Type != Delivery {
		return nil
	}

	var errList []error
	if strings.TrimSpace(d.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("deliveryAddress"))
	}
	if strings.TrimSpace(d.Phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("deliveryPhone"))
	}
	if strings.TrimSpace(d.Region) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("region"))
	}
	return errors.Join(errList...)
}
