// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package versionsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/pvctl/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/pvctl/pkg/core/model"
)

type syncReq struct {
	DryRun bool `form:"dry-run"`
}

type rawBumpReq struct {
	Component string `form:"component" binding:"required,oneof=major minor patch"`
	DryRun    bool   `form:"dry-run"`
}

type bumpReq struct {
	Name      string
	Component model.Component
	DryRun    bool
}

func (rs *resource) DserSyncReq(c *gin.Context) *syncReq {
	req := &syncReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserBumpReq(c *gin.Context) *bumpReq {
	val := rs.DserBumpAllReq(c)
	if val == nil {
		return nil
	}
	val.Name = c.Param("name")
	if val.Name == "" {
		serdser.Invalid(c, serdser.Errors{
			"name": {"Path param name is empty."},
		})
		return nil
	}
	return val
}

func (rs *resource) DserBumpAllReq(c *gin.Context) *bumpReq {
	req := &rawBumpReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	comp, err := model.ParseComponent(req.Component)
	if err != nil {
		serdser.Invalid(c, serdser.Errors{"component": {err.Error()}})
		return nil
	}
	return &bumpReq{Component: comp, DryRun: req.DryRun}
}
