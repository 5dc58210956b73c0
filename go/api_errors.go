package pizzeriaserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	cartapp "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
	catalogapp "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	storefrontapp "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/application"
	apierrors "github.com/Apurer/go-gin-pizzeria/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	mapStoreClosed,
	mapValidation,
	mapNotFound,
	mapBusinessRule,
	mapTransition,
	mapInvalidInput,
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapStoreClosed(err error) (apierrors.ProblemDetail, bool) {
	var closed *ordersapp.StoreClosedError
	if !errors.As(err, &closed) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.ErrStoreClosed.WithDetail(closed.Message).WithExtension("closedMessage", closed.Message), true
}

func mapValidation(err error) (apierrors.ProblemDetail, bool) {
	var validation *ordersdomain.ValidationError
	if !errors.As(err, &validation) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(validation.Error(), validation.Fields), true
}

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartdomain.ErrLineNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapBusinessRule(err error) (apierrors.ProblemDetail, bool) {
	var composition *catalogdomain.CompositionError
	if errors.As(err, &composition) {
		p := apierrors.ErrUnprocessable.WithDetail(err.Error()).WithExtension("rule", composition.Rule)
		if composition.Limit > 0 {
			p = p.WithExtension("limit", composition.Limit)
		}
		return p, true
	}
	var size *catalogdomain.SizeUnavailableError
	if errors.As(err, &size) {
		return apierrors.ErrUnprocessable.WithDetail(err.Error()).
			WithExtension("itemId", size.ItemID).
			WithExtension("size", string(size.Size)), true
	}
	var payment *ordersdomain.PaymentPreconditionError
	if errors.As(err, &payment) {
		return apierrors.ErrUnprocessable.WithDetail(err.Error()).WithExtension("method", string(payment.Method)), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapTransition(err error) (apierrors.ProblemDetail, bool) {
	var illegal *ordersdomain.IllegalTransitionError
	if errors.As(err, &illegal) {
		return apierrors.ErrConflict.WithDetail(err.Error()).
			WithExtension("from", string(illegal.From)).
			WithExtension("to", string(illegal.To)), true
	}
	var terminal *ordersdomain.AlreadyTerminalError
	if errors.As(err, &terminal) {
		return apierrors.ErrConflict.WithDetail(err.Error()).WithExtension("status", string(terminal.Status)), true
	}
	if errors.Is(err, ordersdomain.ErrConcurrentUpdate) {
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, cartapp.ErrInvalidInput) ||
		errors.Is(err, catalogapp.ErrInvalidInput) ||
		errors.Is(err, storefrontapp.ErrInvalidInput) ||
		errors.Is(err, ordersdomain.ErrInvalidStatus) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// bindPathParam binds a simple-style path parameter, answering 400 on failure.
func bindPathParam(c *gin.Context, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}

// bindQueryParam binds a form-style query parameter, answering 400 on failure.
func bindQueryParam(c *gin.Context, name string, required bool, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, required, name, c.Request.URL.Query(), dest); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}
