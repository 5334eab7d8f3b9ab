package gxextron

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

var errorResponse = regexp.MustCompile(`^E[0-9]{2}$`)

// Classification is the result of classifying a device response.
type Classification int

const (
	// ClassificationSuccess is a normal reply.
	ClassificationSuccess Classification = iota
	// ClassificationTransient is an error code that can be retried.
	ClassificationTransient
	// ClassificationTerminal is an error code that is returned to the caller.
	ClassificationTerminal
)

// String returns the name of the classification.
func (g Classification) String() string {
	var ret string
	switch g {
	case ClassificationSuccess:
		ret = "Success"
	case ClassificationTransient:
		ret = "Transient"
	case ClassificationTerminal:
		ret = "Terminal"
	}
	return ret
}

// IsErrorResponse returns true if the response is an E followed by exactly
// two digits. The delimiter and surrounding white space are ignored.
func IsErrorResponse(response string) bool {
	return errorResponse.MatchString(strings.TrimSpace(response))
}

// RetryPolicy defines how transient error codes are retried.
type RetryPolicy struct {
	// Attempts is the number of additional attempts after the first one.
	Attempts int
	// Delay is the wait time before each additional attempt.
	Delay time.Duration
	// RetryableCodes are the error codes that are retried.
	RetryableCodes []string
}

// DefaultRetryPolicy returns the policy used by Extron devices:
// E10 is retried five times with one second between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Delay: time.Second, RetryableCodes: []string{"E10"}}
}

// Classify classifies the device response.
func (p RetryPolicy) Classify(response string) Classification {
	code := strings.TrimSpace(response)
	if !errorResponse.MatchString(code) {
		return ClassificationSuccess
	}
	if slices.Contains(p.RetryableCodes, code) {
		return ClassificationTransient
	}
	return ClassificationTerminal
}
