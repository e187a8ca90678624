package http

import (
	"errors"
	"net/http"
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail maps a domain error onto an HTTP status and writes the uniform
// error body.
func fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOperationNotAllowed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// optionalTimeParam parses an RFC 3339 query parameter, returning nil when
// the parameter is absent.
func optionalTimeParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// modifierOptions converts the optional binding fields of a modifier
// request into domain modifier options.
func modifierOptions(request ModifierRequest) (pricing.ModifierOptions, error) {
	options := pricing.ModifierOptions{
		PropertyValue:       request.PropertyValue,
		ConditionExpression: request.ConditionExpression,
		StartDate:           request.StartDate,
		EndDate:             request.EndDate,
	}

	if request.PropertyID != nil {
		propertyID, err := kernel.UUIDFromString(*request.PropertyID)
		if err != nil {
			return pricing.ModifierOptions{}, err
		}
		options.PropertyID = &propertyID
	}

	return options, nil
}

func toOrderView(response queries.GetOrderQueryResponse) OrderView {
	sections := make([]SectionView, 0, len(response.Sections))
	for _, section := range response.Sections {
		items := make([]ItemView, 0, len(section.Items))
		for _, item := range section.Items {
			properties := make([]ItemPropertyView, 0, len(item.Properties))
			for _, property := range item.Properties {
				properties = append(properties, ItemPropertyView{
					PropertyID:   property.PropertyID.String(),
					PropertyCode: property.PropertyCode,
					PropertyName: property.PropertyName,
					Value:        property.Value,
				})
			}

			items = append(items, ItemView{
				ID:          item.ID.String(),
				ProductID:   item.ProductID.String(),
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Unit:        item.Unit,
				Coefficient: item.Coefficient,
				BasePrice:   item.BasePrice,
				FinalPrice:  item.FinalPrice,
				TotalPrice:  item.TotalPrice,
				Properties:  properties,
			})
		}

		sections = append(sections, SectionView{
			SectionNumber: section.SectionNumber,
			Name:          section.Name,
			Description:   section.Description,
			TotalAmount:   section.TotalAmount,
			Items:         items,
		})
	}

	return OrderView{
		ID:            response.ID.String(),
		OrderNumber:   response.OrderNumber,
		ClientID:      response.ClientID,
		ClientName:    response.ClientName,
		Status:        response.Status,
		PaymentStatus: response.PaymentStatus,
		Deadline:      response.Deadline,
		LockedBy:      response.LockedBy,
		LockedAt:      response.LockedAt,
		Notes:         response.Notes,
		TotalAmount:   response.TotalAmount,
		Sections:      sections,
	}
}

func toAppliedModifierViews(modifiers []queries.AppliedModifierResponse) []AppliedModifierView {
	views := make([]AppliedModifierView, 0, len(modifiers))
	for _, modifier := range modifiers {
		views = append(views, AppliedModifierView{
			Code:  modifier.Code,
			Name:  modifier.Name,
			Type:  modifier.Type,
			Value: modifier.Value,
			Delta: modifier.Delta,
		})
	}
	return views
}
