package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DataLoadError is fatal: the dataset could not be read or has no usable header.
type DataLoadError struct {
	Path string
	Err  error
}

func (e DataLoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e DataLoadError) Unwrap() error {
	return e.Err
}

func IsDataLoadError(err error) bool {
	var target DataLoadError
	return errors.As(err, &target)
}

type NotFoundError struct {
	Kind  string
	Query string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no %s matching %q", e.Kind, e.Query)
}

func IsNotFoundError(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

type InvalidArgumentsError struct {
	Tool     string
	Problems []string
}

func (e InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, strings.Join(e.Problems, "; "))
}

func IsInvalidArgumentsError(err error) bool {
	var target InvalidArgumentsError
	return errors.As(err, &target)
}

type AgentLoopExceededError struct {
	Limit int
}

func (e AgentLoopExceededError) Error() string {
	return fmt.Sprintf("no final answer after %d model calls", e.Limit)
}

func IsAgentLoopExceededError(err error) bool {
	var target AgentLoopExceededError
	return errors.As(err, &target)
}

type ModelCallError struct {
	Timeout bool
	Err     error
}

func (e ModelCallError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("model call timed out: %v", e.Err)
	}
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e ModelCallError) Unwrap() error {
	return e.Err
}

func IsModelCallError(err error) bool {
	var target ModelCallError
	return errors.As(err, &target)
}
