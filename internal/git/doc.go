// Package git resolves the commit a content directory is checked out at, so
// generation manifests can be traced back to their source revision.
package git
