// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/pvctl/pkg/adapter/config/cfg1"
	"github.com/momeni/pvctl/pkg/adapter/restful/gin/versionsrs"
)

// BasePath is the path prefix of all pvctl REST APIs.
const BasePath = "/api/pvctl/v1"

// Register instantiates the registry and units repositories of the
// root workspace directory and the reconciliation use case over them
// based on the c configuration settings. Then, it instantiates the
// "resource" structs, from packages which are named like versionsrs,
// in order to adapt the use case with the REST APIs and registers them
// as request handlers using the e gin-gonic engine instance.
func Register(e *gin.Engine, c *cfg1.Config, root string) error {
	uc, err := c.NewUseCase(root)
	if err != nil {
		return fmt.Errorf("creating reconciliation use case: %w", err)
	}
	r := e.Group(BasePath)
	versionsrs.Register(r, uc)
	return nil
}
