// Command placard manages creative uploads for digital signage campaigns:
// it resolves the campaign's slot manifest, validates creatives against each
// screen's requirements, and drives per-slot uploads through a persistent
// queue.
package main
