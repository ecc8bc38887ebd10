// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser binds (deserializes) the request parameters and
// serializes the error responses of all resources. Failures are
// reported either as a {"detail": "..."} object or, for invalid
// parameters, as an Errors map.
package serdser

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/pvctl/pkg/core/cerr"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(paramName)
	}
}

// paramName names a field in validation errors after the request
// parameter which it is bound to.
func paramName(f reflect.StructField) string {
	for _, tag := range []string{"uri", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Errors maps the request parameter names to their error messages.
type Errors map[string][]string

// Add appends msgs to the messages of the name parameter.
func (e *Errors) Add(name string, msgs ...string) {
	if *e == nil {
		*e = make(Errors)
	}
	(*e)[name] = append((*e)[name], msgs...)
}

// Invalid writes errs as the body of a 400 response.
func Invalid(c *gin.Context, errs Errors) {
	c.JSON(http.StatusBadRequest, errs)
}

// Bind deserializes the c request into req using the b binding and
// validates it based on its binding tags. If binding fails, an error
// response is written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	err := c.ShouldBindWith(req, b)
	if err == nil {
		return true
	}
	var (
		invalid *validator.InvalidValidationError
		fields  validator.ValidationErrors
	)
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusInternalServerError, detail(err))
	case errors.As(err, &fields):
		var errs Errors
		for _, fe := range fields {
			errs.Add(fe.Field(), fe.Error())
		}
		Invalid(c, errs)
	default:
		c.JSON(http.StatusBadRequest, detail(err))
	}
	return false
}

// SerErr writes err as a JSON response. The status code is taken from
// a wrapped *cerr.Error (if any) and defaults to 500.
func SerErr(c *gin.Context, err error) {
	status, err := unwrap(err)
	c.JSON(status, detail(err))
}

// SerPartial writes err like SerErr and adds the report of the changes
// which were applied before the failure under the "report" key.
func SerPartial(c *gin.Context, err error, report any) {
	status, err := unwrap(err)
	h := detail(err)
	h["report"] = report
	c.JSON(status, h)
}

func unwrap(err error) (int, error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode, ce.Err
	}
	return http.StatusInternalServerError, err
}

func detail(err error) gin.H {
	return gin.H{"detail": err.Error()}
}
