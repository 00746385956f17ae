package api

import "errors"

var (
	// ErrNetwork indicates a transport-level failure; no verdict was received
	// from the backend, so local state must be left untouched and the call is
	// safe to retry.
	ErrNetwork = errors.New("backend unreachable")

	// ErrServer indicates the backend answered with a 5xx status.
	ErrServer = errors.New("backend error")

	// ErrValidationRejected indicates the backend rejected the payload as
	// invalid (4xx). The draft should be corrected before retrying.
	ErrValidationRejected = errors.New("request rejected as invalid")

	// ErrPlanUnavailable indicates the target plan cannot be signed up for,
	// either because it is marked coming-soon or the backend refused it.
	ErrPlanUnavailable = errors.New("plan is not available for signup")

	// ErrTokenConsumed indicates the registration token was already used by a
	// completed onboarding. The only recovery is restarting the signup.
	ErrTokenConsumed = errors.New("registration token already consumed")
)
