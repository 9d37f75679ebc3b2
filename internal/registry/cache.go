package registry

// LookupColor returns a live Color resource id for the given ARGB value,
// if one is cached.
func (r *Registry) LookupColor(argb uint32) (uint32, bool) {
	id, ok := r.colorCache[argb]
	return id, ok
}

// CacheColor records a Color resource's id under its ARGB key.
func (r *Registry) CacheColor(argb, id uint32) {
	r.colorCache[argb] = id
}

// LookupTTF returns a live TTF resource id for the given app-provided name.
func (r *Registry) LookupTTF(name string) (uint32, bool) {
	id, ok := r.ttfCache[name]
	return id, ok
}

// CacheTTF records a TTF resource's id under its name key.
func (r *Registry) CacheTTF(name string, id uint32) {
	r.ttfCache[name] = id
}

// LookupFont returns a live Font resource id for the given key.
func (r *Registry) LookupFont(k FontKey) (uint32, bool) {
	id, ok := r.fontCache[k]
	return id, ok
}

// CacheFont records a Font resource's id under its key.
func (r *Registry) CacheFont(k FontKey, id uint32) {
	r.fontCache[k] = id
}

// LookupImage returns a live Image resource id for the given app-provided
// name.
func (r *Registry) LookupImage(name string) (uint32, bool) {
	id, ok := r.imageCache[name]
	return id, ok
}

// CacheImage records an Image resource's id under its name key.
func (r *Registry) CacheImage(name string, id uint32) {
	r.imageCache[name] = id
}

// LookupAnimation returns a live Animation resource id for the given key.
func (r *Registry) LookupAnimation(k AnimKey) (uint32, bool) {
	id, ok := r.animCache[k]
	return id, ok
}

// CacheAnimation records an Animation resource's id under its key.
func (r *Registry) CacheAnimation(k AnimKey, id uint32) {
	r.animCache[k] = id
}
