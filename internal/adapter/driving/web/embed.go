package web

import "embed"

// StaticFS holds the embedded static assets (app JS and CSS).
//
//go:embed static/*
var StaticFS embed.FS
