// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package versionsrs realizes the versions resource, allowing the
// validation, sync, and bump REST APIs to be accepted and delegated to
// the reconciliation use case respectively.
package versionsrs

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/momeni/pvctl/pkg/adapter/reporter/jsonr"
	"github.com/momeni/pvctl/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
)

// resource serializes all use case invocations with its mutex, since
// the manifest files are not locked while being rewritten.
type resource struct {
	mu sync.Mutex
	uc *reconuc.UseCase
}

// Register instantiates a resource adapting the reconciliation use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pvctl/v1/versions
//     in order to validate the registry against the unit manifests,
//  2. POST request to /api/pvctl/v1/versions/sync
//     in order to sync both sides to their higher versions,
//  3. POST request to /api/pvctl/v1/plugins/:name/bump
//     in order to bump one plugin version, and
//  4. POST request to /api/pvctl/v1/plugins/bump
//     in order to bump all plugin versions.
func Register(r *gin.RouterGroup, uc *reconuc.UseCase) {
	rs := &resource{uc: uc}
	r.GET("versions", rs.Validate)
	r.POST("versions/sync", rs.Sync)
	r.POST("plugins/:name/bump", rs.Bump)
	r.POST("plugins/bump", rs.BumpAll)
}

// Validate responds with the validation report and status 200, whatever
// the validation status is. Only an unreadable registry is an error.
func (rs *resource) Validate(c *gin.Context) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rep, err := rs.uc.Validate(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonr.NewValidation(rep))
}

func (rs *resource) Sync(c *gin.Context) {
	req := rs.DserSyncReq(c)
	if req == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rep, err := rs.uc.Sync(c, req.DryRun)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonr.NewSync(rep))
}

// Bump responds with the bump report. If the registry was bumped but
// the unit manifest could not be written, the error response carries
// that partial report too.
func (rs *resource) Bump(c *gin.Context) {
	req := rs.DserBumpReq(c)
	if req == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rep, err := rs.uc.Bump(c, req.Name, req.Component, req.DryRun)
	switch {
	case err != nil && rep != nil:
		serdser.SerPartial(c, err, jsonr.NewBump(rep))
		return
	case err != nil:
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonr.NewBump(rep))
}

// BumpAll responds with status 200 and the per-plugin outcomes, even if
// some of them have failed. Only an unreadable registry is an error.
func (rs *resource) BumpAll(c *gin.Context) {
	req := rs.DserBumpAllReq(c)
	if req == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rep, err := rs.uc.BumpAll(c, req.Component, req.DryRun)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonr.NewBumpAll(rep))
}
