// Package validators registers request validation tags on gin's binding engine.
package validators

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

var registerOnce sync.Once

// Register installs ticket_priority and ticket_status on gin's validator.
// Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(utils.JSONTagName)
	if err := v.RegisterValidation("ticket_priority", validPriority); err != nil {
		return fmt.Errorf("failed to register ticket_priority: %w", err)
	}
	if err := v.RegisterValidation("ticket_status", validStatus); err != nil {
		return fmt.Errorf("failed to register ticket_status: %w", err)
	}
	return nil
}

func validPriority(fl validator.FieldLevel) bool {
	return vo.Priority(strings.ToUpper(fl.Field().String())).IsValid()
}

func validStatus(fl validator.FieldLevel) bool {
	return vo.TicketStatus(strings.ToUpper(fl.Field().String())).IsValid()
}
