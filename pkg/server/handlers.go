package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/buckcalc/buckcalc/pkg/buck"
	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/types"
	"github.com/buckcalc/buckcalc/pkg/version"
)

func (s *Server) getDefaults(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.conf.Raw())
}

func (s *Server) calculate(c *gin.Context) {
	var req config.RawFileConfig
	// An empty body evaluates the server defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.Error(err)
		return
	}

	// Work on a copy, requests must not change the server config.
	params := config.NewFileFromConfig(s.conf.Raw(), "")
	params.Merge(&req)

	res, err := buck.Evaluate(params.OperatingPoint())
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.Error(err)
		return
	}

	if !res.DutyCycleInRange() {
		logrus.WithFields(params.LogrusFields()).Warnf("duty cycle %.3f is outside (0, 1]", float64(res.DutyCycle))
	}

	c.IndentedJSON(http.StatusOK, types.NewResult(res, params.Raw()))
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
