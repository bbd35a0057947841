package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if err := c.validateSink(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFields() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must be set", key))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation (value %v)", key, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (c *Config) validateSink() error {
	switch c.Sink.Kind {
	case SinkS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket must be set when sink.kind is s3")
		}
	case SinkMinio:
		if c.Minio.Endpoint == "" {
			return errors.New("minio.endpoint must be set when sink.kind is minio")
		}
		if c.Minio.Bucket == "" {
			return errors.New("minio.bucket must be set when sink.kind is minio")
		}
		if c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			return errors.New("minio.access_key and minio.secret_key must be set when sink.kind is minio (or set MINIO_ACCESS_KEY/MINIO_SECRET_KEY)")
		}
	}
	return nil
}
