package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service has no snapshot; call Start first")
	ErrUnknownRound = errors.New("unknown round")
)
