// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes Fn fields to override behavior per
// test and falls back to simple default values when no override is set.
package mocks
