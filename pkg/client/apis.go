package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/types"
)

// Calculate evaluates params on the server. Parameters left nil are filled in
// from the server config.
func (c *Client) Calculate(params *config.RawFileConfig) (*types.Result, error) {
	if params == nil {
		params = &config.RawFileConfig{}
	}
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal parameters")
	}

	ret, err := c.Post("/calculate", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to calculate")
	}

	var res types.Result
	if err := json.Unmarshal([]byte(ret), &res); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal result")
	}

	return &res, nil
}

func (c *Client) GetDefaults() (*config.RawFileConfig, error) {
	ret, err := c.Get("/defaults")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get defaults")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal defaults")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}
