package transform

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/pinhole/logging"
)

// CameraConfig is the JSON form of a calibrated camera.
type CameraConfig struct {
	Intrinsics *PinholeCameraIntrinsics `json:"intrinsic_parameters"`
	Extrinsics *CameraExtrinsics        `json:"extrinsic_parameters"`
}

// NewConfigValidationFieldRequiredError is used when a required config field is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return errors.Errorf("%s: %q is required", path, field)
}

// NewCameraConfigFromBytes parses a CameraConfig from JSON and validates it.
func NewCameraConfigFromBytes(data []byte) (*CameraConfig, error) {
	cfg := &CameraConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing camera config")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures both parameter sets are present and usable. Every problem found is reported.
func (cfg *CameraConfig) Validate(path string) error {
	if path == "" {
		path = "camera"
	}
	var err error
	if cfg.Intrinsics == nil {
		err = multierr.Append(err, NewConfigValidationFieldRequiredError(path, "intrinsic_parameters"))
	} else if intrErr := cfg.Intrinsics.CheckValid(); intrErr != nil {
		err = multierr.Append(err, errors.Wrap(intrErr, fmt.Sprintf("%s.intrinsic_parameters", path)))
	}
	if cfg.Extrinsics == nil {
		err = multierr.Append(err, NewConfigValidationFieldRequiredError(path, "extrinsic_parameters"))
	} else if extErr := cfg.Extrinsics.CheckValid(); extErr != nil {
		err = multierr.Append(err, errors.Wrap(extErr, fmt.Sprintf("%s.extrinsic_parameters", path)))
	}
	return err
}

// NewProjector builds a PinholeProjector from the config.
func (cfg *CameraConfig) NewProjector(logger logging.Logger) (*PinholeProjector, error) {
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return NewPinholeProjector(cfg.Intrinsics, cfg.Extrinsics, logger.Sublogger("projector"))
}
