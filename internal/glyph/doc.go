// Package glyph maps notifications to lit zones of a light array.
//
// Notification events are classified against the zone mapping Table, which
// binds application packages and directory contacts to logical zones. The
// Registry reference-counts the notifications holding each zone on and
// derives two disjoint channel sets: channels lit statically and channels
// that pulse. The Coordinator renders those sets through a led.Driver,
// running at most one pulse animation at a time under a wake lock.
//
// Engine ties these together and serializes every entry point:
//
//	engine := glyph.New(glyph.Options{
//		Driver:     driver,
//		Translator: led.NewTranslator(model),
//		Store:      store,
//		ZoneCount:  model.ZoneCount(),
//		Directory:  directory,
//	})
//	if err := engine.Reload(); err != nil {
//		return err
//	}
//	engine.OnDriverConnected()
//	engine.HandleCommand(glyph.CommandPhoneLocked, nil)
//	engine.HandlePosted(ev)
//
// Rendering only happens while the screen is locked and the driver session
// is open; state is tracked regardless.
package glyph
