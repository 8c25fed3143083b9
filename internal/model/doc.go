// Package model defines domain data structures shared across the app: queued
// jobs, progress events, in-flight status, completion records and the status
// snapshot handed to observers. Values are plain data and safe to copy.
package model
