// Package website maps AWS regions to their S3 static website endpoints.
//
// Website hosting uses a separate endpoint from the REST API, and the host
// format differs by region: older regions join the region with a dash
// (s3-website-us-east-1.amazonaws.com) while newer ones use a dot
// (s3-website.us-east-2.amazonaws.com).
package website

import (
	"fmt"

	"github.com/webfleet/sitesync/errors"
)

// endpoints maps a region to the host serving website requests for
// buckets in that region.
var endpoints = map[string]string{
	"us-east-1":      "s3-website-us-east-1.amazonaws.com",
	"us-east-2":      "s3-website.us-east-2.amazonaws.com",
	"us-west-1":      "s3-website-us-west-1.amazonaws.com",
	"us-west-2":      "s3-website-us-west-2.amazonaws.com",
	"af-south-1":     "s3-website.af-south-1.amazonaws.com",
	"ap-east-1":      "s3-website.ap-east-1.amazonaws.com",
	"ap-south-1":     "s3-website.ap-south-1.amazonaws.com",
	"ap-northeast-1": "s3-website-ap-northeast-1.amazonaws.com",
	"ap-northeast-2": "s3-website.ap-northeast-2.amazonaws.com",
	"ap-northeast-3": "s3-website.ap-northeast-3.amazonaws.com",
	"ap-southeast-1": "s3-website-ap-southeast-1.amazonaws.com",
	"ap-southeast-2": "s3-website-ap-southeast-2.amazonaws.com",
	"ca-central-1":   "s3-website.ca-central-1.amazonaws.com",
	"eu-central-1":   "s3-website.eu-central-1.amazonaws.com",
	"eu-west-1":      "s3-website-eu-west-1.amazonaws.com",
	"eu-west-2":      "s3-website.eu-west-2.amazonaws.com",
	"eu-west-3":      "s3-website.eu-west-3.amazonaws.com",
	"eu-north-1":     "s3-website.eu-north-1.amazonaws.com",
	"eu-south-1":     "s3-website.eu-south-1.amazonaws.com",
	"me-south-1":     "s3-website.me-south-1.amazonaws.com",
	"sa-east-1":      "s3-website-sa-east-1.amazonaws.com",
}

// Endpoint returns the website host for a region.
// Returns ErrUnknownRegion for regions with no known website endpoint.
func Endpoint(region string) (string, error) {
	host, ok := endpoints[region]
	if !ok {
		return "", errors.NewError("websiteEndpoint", errors.ErrUnknownRegion).
			WithMessage(fmt.Sprintf("region %q", region))
	}
	return host, nil
}

// URL returns the website URL for a bucket hosted in the given region.
// Website endpoints serve plain HTTP only.
func URL(bucket, region string) (string, error) {
	host, err := Endpoint(region)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s.%s", bucket, host), nil
}
