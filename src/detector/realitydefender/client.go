package realitydefender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/mediakind"
	"github.com/veritylab/dfscan/src/webclient"
)

const (
	providerName = "realitydefender"

	defaultBaseURL        = "https://api.prd.realitydefender.xyz"
	defaultRequestTimeout = 15 * time.Second
	defaultUploadAttempts = 4
	defaultPollInterval   = 3 * time.Second
	defaultPollTimeout    = 5 * time.Minute
)

func init() {
	core.RegisterProvider(providerName, func(cfg core.FactoryConfig) (core.Client, error) {
		return NewClient(cfg)
	}, "rd", "reality-defender")
}

type client struct {
	apiKey       string
	baseURL      string
	http         *resty.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient constructs a Reality Defender backed implementation of
// core.Client. A missing API key fails here, before any request exists.
func NewClient(cfg core.FactoryConfig) (core.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &core.AuthError{Provider: providerName, Reason: "API key not configured"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		http:         webclient.NewResty(orDuration(cfg.RequestTimeout, defaultRequestTimeout), orInt(cfg.UploadAttempts, defaultUploadAttempts)),
		pollInterval: orDuration(cfg.PollInterval, defaultPollInterval),
		pollTimeout:  orDuration(cfg.PollTimeout, defaultPollTimeout),
	}
	c.http.SetBaseURL(c.baseURL)
	return c, nil
}

func (c *client) Analyze(ctx context.Context, path string, kind mediakind.Kind) (*core.Result, error) {
	requestID, err := c.upload(ctx, path)
	if err != nil {
		return nil, err
	}
	log.Infof("[RealityDefender] submission accepted, request %s", requestID)

	detail, err := c.pollResult(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return detail.toResult(kind, requestID), nil
}

// upload asks for a presigned slot, then PUTs the media bytes to it. The
// signed URL is served off-platform and is not sent the API key.
func (c *client) upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("realitydefender: read %s: %w", path, err)
	}

	resp, err := c.api(ctx).
		SetBody(presignRequest{FileName: filepath.Base(path)}).
		Post("/api/files/aws-presigned")
	if err != nil {
		return "", &core.TransportError{Provider: providerName, Op: "request upload slot", Err: err}
	}
	if resp.IsError() {
		return "", c.serviceError(resp)
	}

	var pre presignResponse
	if err := json.Unmarshal(resp.Body(), &pre); err != nil {
		return "", &core.ServiceError{Provider: providerName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	signedURL := pre.signedURL()
	requestID := pre.requestID()
	if signedURL == "" || requestID == "" {
		return "", &core.ServiceError{Provider: providerName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	log.Infof("[RealityDefender] uploading %s (%d bytes)", filepath.Base(path), len(data))
	putResp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(signedURL)
	if err != nil {
		return "", &core.TransportError{Provider: providerName, Op: "upload media", Err: err}
	}
	if putResp.IsError() {
		return "", c.serviceError(putResp)
	}
	return requestID, nil
}

// pollResult fetches the media record until a terminal status appears. The
// first fetch happens immediately; after that, one fetch per poll interval
// until pollTimeout.
func (c *client) pollResult(ctx context.Context, requestID string) (*mediaDetail, error) {
	deadline := time.Now().Add(c.pollTimeout)
	for {
		detail, err := c.mediaDetail(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if detail.status().Terminal() {
			return detail, nil
		}

		if time.Now().After(deadline) {
			return nil, &core.TransportError{
				Provider: providerName,
				Op:       "await result",
				Err:      fmt.Errorf("no verdict for request %s after %s", requestID, c.pollTimeout),
			}
		}
		log.Debugf("[RealityDefender] request %s still processing", requestID)

		t := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, &core.TransportError{Provider: providerName, Op: "await result", Err: ctx.Err()}
		case <-t.C:
		}
	}
}

func (c *client) mediaDetail(ctx context.Context, requestID string) (*mediaDetail, error) {
	resp, err := c.api(ctx).Get("/api/media/users/" + requestID)
	if err != nil {
		return nil, &core.TransportError{Provider: providerName, Op: "fetch result", Err: err}
	}
	if resp.IsError() {
		return nil, c.serviceError(resp)
	}

	var detail mediaDetail
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, &core.ServiceError{Provider: providerName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	// An error key in a 200 body is still a service failure.
	if detail.failed() {
		return nil, &core.ServiceError{Provider: providerName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	detail.raw = append([]byte(nil), resp.Body()...)
	return &detail, nil
}

// api starts an authenticated JSON request against the platform API.
func (c *client) api(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json")
}

func (c *client) serviceError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return &core.AuthError{
			Provider: providerName,
			Reason:   fmt.Sprintf("service rejected the API key (HTTP %d)", code),
		}
	}
	return &core.ServiceError{Provider: providerName, StatusCode: code, Body: resp.Body()}
}

func orDuration(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
