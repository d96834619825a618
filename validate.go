// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"strings"

	validatorpkg "github.com/go-playground/validator/v10"
)

// registerChannelNameValidation installs the "pnchannel" tag on cfg.Validate,
// rejecting channel/group names containing the reserved separators the wire
// protocol uses to join multi-channel lists and build paths (§4.C2).
func registerChannelNameValidation(v *validatorpkg.Validate) {
	v.RegisterValidation("pnchannel", func(fl validatorpkg.FieldLevel) bool {
		return isValidChannelName(fl.Field().String())
	})
}

func isValidChannelName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, ",/?#")
}

// publishParams validates a publish operation's parameters (C2).
type publishParams struct {
	Channel string `validate:"required,pnchannel"`
	Message []byte `validate:"required"`
}

// subscribeParams validates a subscribe operation's parameters.
type subscribeParams struct {
	Channels []string `validate:"required,min=1,dive,pnchannel"`
}

// validateParams runs cfg.Validate against s and maps any failure to
// [ResultInvalidChannel] or [ResultInvalidParameters].
func validateParams(cfg *Config, s any) (ResultKind, error) {
	v := cfg.Validate
	if v == nil {
		v = defaultValidator
	}
	if err := v.Struct(s); err != nil {
		for _, fe := range err.(validatorpkg.ValidationErrors) {
			if fe.Tag() == "pnchannel" {
				return ResultInvalidChannel, err
			}
		}
		return ResultInvalidParameters, err
	}
	return ResultOK, nil
}

var defaultValidator = func() *validatorpkg.Validate {
	v := validatorpkg.New()
	registerChannelNameValidation(v)
	return v
}()
