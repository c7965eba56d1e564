package client

// cached holds a lazily fetched value. loaded distinguishes "never fetched"
// from a fetch that legitimately returned an empty value.
type cached[T any] struct {
	value  T
	loaded bool
}

func (c *cached[T]) get() (T, bool) {
	return c.value, c.loaded
}

func (c *cached[T]) set(v T) {
	c.value = v
	c.loaded = true
}

func (c *cached[T]) reset() {
	var zero T
	c.value = zero
	c.loaded = false
}

// load returns the value held in slot, running refresh first if the slot has
// never been populated.
func load[T any](c *BlueIrisClient, slot *cached[T], refresh func() error) (T, error) {
	c.mu.Lock()
	v, ok := slot.get()
	c.mu.Unlock()
	if ok {
		return v, nil
	}

	if err := refresh(); err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	v, _ = slot.get()
	return v, nil
}

// Invalidate forgets every cached collection. The next read of each one
// fetches it again.
func (c *BlueIrisClient) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.reset()
	c.cameras.reset()
	c.alerts.reset()
	c.clips.reset()
	c.log.reset()
	c.sysconfig.reset()
}
