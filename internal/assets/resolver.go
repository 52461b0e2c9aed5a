package assets

import (
	"path"
	"strings"
)

// thumbnailRoot is where the thumbnail build step writes its .webp output.
const thumbnailRoot = "/thumbnails"

// thumbnailSources are the asset categories the thumbnail build step
// covers; anything outside them has no thumbnail variant.
var thumbnailSources = []string{"/avatars/", "/chatImages/"}

// imageExtensions matches the formats the thumbnail build step accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Resolver maps logical asset paths to deployable URLs. The site may be
// hosted under a non-root base path, so every static reference goes
// through here.
type Resolver struct {
	basePath string
}

// NewResolver builds a resolver for the deployment base path ("/" for
// root deployments, "/team-page/" on a project page).
func NewResolver(basePath string) *Resolver {
	if basePath == "" {
		basePath = "/"
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return &Resolver{basePath: basePath}
}

// ResolveAsset prefixes a logical path with the deployment base path.
// Empty paths and absolute external URLs pass through unchanged.
func (r *Resolver) ResolveAsset(p string) string {
	if p == "" {
		return p
	}
	if isExternal(p) {
		return p
	}
	return r.basePath + strings.TrimPrefix(p, "/")
}

// ResolveThumbnail maps an asset path to its pre-generated thumbnail and
// resolves it. Paths outside the thumbnail source categories resolve to
// the original asset.
func (r *Resolver) ResolveThumbnail(p string) string {
	if p == "" || isExternal(p) {
		return p
	}

	for _, prefix := range thumbnailSources {
		if strings.HasPrefix(p, prefix) {
			ext := strings.ToLower(path.Ext(p))
			if imageExtensions[ext] {
				thumb := thumbnailRoot + strings.TrimSuffix(p, path.Ext(p)) + ".webp"
				return r.ResolveAsset(thumb)
			}
			break
		}
	}
	return r.ResolveAsset(p)
}

func isExternal(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
