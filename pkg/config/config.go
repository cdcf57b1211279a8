package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/travcost/pkg"
	"github.com/lintang-b-s/travcost/pkg/costfunction"
	"github.com/lintang-b-s/travcost/pkg/util"
	"github.com/spf13/viper"
)

// Config. everything needed to build a cost model, immutable once the engine is created.
type Config struct {
	EnvType                       string  `mapstructure:"env_type" validate:"required,oneof=xy xytheta footprint"`
	Speed                         float64 `mapstructure:"speed" validate:"gte=0"`
	NumFootprintClasses           int     `mapstructure:"num_footprint_classes" validate:"gte=1"`
	TimeToAdaptFootprint          float64 `mapstructure:"time_to_adapt_footprint" validate:"gte=0"`
	AdaptFootprintPenalty         float64 `mapstructure:"adapt_footprint_penalty" validate:"gte=0"`
	FootprintInfeasibilityPolicy  string  `mapstructure:"footprint_infeasibility_policy" validate:"required,oneof=infinite scaled_penalty"`
	EnableMotionCostInterpolation bool    `mapstructure:"enable_motion_cost_interpolation"`
	LongestValidSegment           float64 `mapstructure:"longest_valid_segment" validate:"gt=0"`
	BalancePathLength             bool    `mapstructure:"balance_path_length"`
	PathLengthWeight              float64 `mapstructure:"path_length_weight" validate:"gte=0"`
	TravGridWeight                float64 `mapstructure:"trav_grid_weight" validate:"gte=0"`
	EvaluationWorkers             int     `mapstructure:"evaluation_workers" validate:"gte=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env_type", pkg.ENV_XYTHETA.String())
	v.SetDefault("speed", pkg.DEFAULT_SPEED)
	v.SetDefault("num_footprint_classes", pkg.DEFAULT_NUM_FOOTPRINT_CLASSES)
	v.SetDefault("time_to_adapt_footprint", pkg.DEFAULT_TIME_TO_ADAPT_FOOTPRINT)
	v.SetDefault("adapt_footprint_penalty", pkg.DEFAULT_ADAPT_FOOTPRINT_PENALTY)
	v.SetDefault("footprint_infeasibility_policy", pkg.FOOTPRINT_POLICY_INFINITE)
	v.SetDefault("enable_motion_cost_interpolation", false)
	v.SetDefault("longest_valid_segment", pkg.DEFAULT_LONGEST_VALID_SEGMENT)
	v.SetDefault("balance_path_length", false)
	v.SetDefault("path_length_weight", 1.0)
	v.SetDefault("trav_grid_weight", 1.0)
	v.SetDefault("evaluation_workers", pkg.DEFAULT_EVALUATION_WORKERS)
}

// Default. config with default values only.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads config.{yaml,json,toml} from configPath. a missing config file is not an error, the defaults
// (overridable with TRAVCOST_* env variables) are used instead.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("TRAVCOST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns every violated constraint as one error.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := TranslateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.WrapErrorf(costfunction.ErrInvalidConfig, util.ErrBadParamInput,
			"validation error: [%s]", strings.Join(vvString, ", "))
	}
	// a zero weight would scale infinite traversal costs down to zero
	if c.BalancePathLength && c.TravGridWeight == 0 {
		return util.WrapErrorf(costfunction.ErrInvalidConfig, util.ErrBadParamInput,
			"trav_grid_weight must be > 0 when balance_path_length is enabled")
	}
	return nil
}

// TranslateError. english message for every validator.FieldError in err.
func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func (c Config) GetEnvType() pkg.EnvType {
	envType, _ := pkg.GetEnvType(c.EnvType)
	return envType
}

func (c Config) GetFootprintPolicy() costfunction.FootprintPolicy {
	if c.FootprintInfeasibilityPolicy == pkg.FOOTPRINT_POLICY_SCALED_PENALTY {
		return costfunction.FootprintPolicyScaledPenalty
	}
	return costfunction.FootprintPolicyInfinite
}

// TravGridConfig. cost model part of the config.
func (c Config) TravGridConfig() (costfunction.TravGridConfig, error) {
	env, err := costfunction.ParseEnvironment(c.EnvType)
	if err != nil {
		return costfunction.TravGridConfig{}, err
	}
	return costfunction.TravGridConfig{
		Env:                   env,
		Speed:                 c.Speed,
		NumFootprintClasses:   c.NumFootprintClasses,
		TimeToAdaptFootprint:  c.TimeToAdaptFootprint,
		AdaptFootprintPenalty: c.AdaptFootprintPenalty,
		FootprintPolicy:       c.GetFootprintPolicy(),
		InterpolateMotionCost: c.EnableMotionCostInterpolation,
	}, nil
}
