// Package vtest provides testing helpers for compost components.
//
// # Quick Start
//
//	var counterType = compost.Define("x-counter",
//	    `<button id="inc" on-click="inc">+</button><span id="n">0</span>`)
//
//	func TestCounter(t *testing.T) {
//	    c := &Counter{}
//	    m := vtest.Mount(t, counterType, c)
//
//	    m.Click("inc")
//	    if c.n != 1 {
//	        t.Errorf("n = %d, want 1", c.n)
//	    }
//	    vtest.ExpectBound(t, m, "click", 1)
//	}
//
// Mount connects the instance and registers a cleanup that disconnects it,
// so every test also checks that teardown succeeds.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, m.Root(), "Saved")
//	vtest.ExpectNotContains(t, m.Root(), "Error")
package vtest
