// Package tasks implements multi-step server workflows: import-and-replace
// of existing images and bulk annotation jobs.
//
// Tasks operate through the Connection interface so they can run against a
// live gateway client or a test double. Long-running tasks report progress
// over an optional channel; sends never block, so a slow or absent consumer
// cannot stall a job.
package tasks
