// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"time"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/script"
)

func (d *Dispatcher) dispatchScript(c *Config, p request.Payload) {
	log := d.logger()
	reg := d.registry()

	var name string
	name = script.RegisterUnique(reg, d.now(), func(v interface{}) {
		defer reg.Unregister(name)
		if c.Success != nil {
			c.Success(v)
		}
	})

	q := "callback=" + name
	if p.Query != "" {
		q = p.Query + "&" + q
	}
	src := request.JoinQuery(c.URL, q)

	if c.Before != nil {
		c.Before(c.Data)
	}
	err := d.injector().Inject(src, func(err error) {
		reg.Unregister(name)
		if err != nil {
			log.Warn().Err(err).Str("src", src).Msg("script load failed")
		}
	})
	if err != nil {
		reg.Unregister(name)
		log.Warn().Err(err).Str("src", src).Msg("script injection failed")
		if c.Error != nil {
			c.Error(err)
		}
	} else {
		log.Debug().Str("src", src).Str("callback", name).Msg("script injected")
	}
	if c.After != nil {
		c.After(c.Data)
	}
}

func (d *Dispatcher) registry() script.Registry {
	if d.Registry == nil {
		return script.DefaultRegistry
	}
	return d.Registry
}

func (d *Dispatcher) injector() script.Injector {
	if d.Injector != nil {
		return d.Injector
	}
	if d.Registry == nil && d.Loop == nil {
		return script.DefaultDocument
	}
	doc := script.NewDocument(d.registry(), d.Loop)
	doc.Logger = d.Logger
	return doc
}

func (d *Dispatcher) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
