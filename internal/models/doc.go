// Package models defines domain entities for the gomero client.
//
// The package contains two categories of types:
//
// 1. Remote objects: projections of server-side state returned by the gateway
//   - [Project], [Dataset], [Image] : the project container hierarchy
//   - [Screen], [Plate], [Well], [WellSample] : the screening hierarchy
//   - [Folder] : grouping of images and ROIs, optionally hierarchical
//   - [ROI], [Shape] : regions of interest drawn on images
//   - [TagAnnotation], [MapAnnotation], [FileAnnotation], [CommentAnnotation], [Table] : annotations
//
// 2. Persistent cache entities: local database-backed copies of browsed metadata
//   - [CachedImage] : image metadata cached for offline listing
//   - [CachedTag] : tag metadata cached for offline listing
//
// Remote objects are thin projections; uniqueness and required parent links
// are enforced server-side, not locally. Cache entities implement the Model
// interface providing ID generation, timestamps, validation, and soft delete
// support. The Repository[T] interface defines standard CRUD operations for
// cache access.
package models
