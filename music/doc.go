// SPDX-License-Identifier: EPL-2.0

// Package music drives pull based playback of WAVE and AIFF files.
//
// Open sniffs the container magic, parses the header with formats/wav or
// formats/aiff and returns a *Music, which implements audio.Stream:
//
//	m, err := music.Open(f, true)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	if err := m.Play(1); err != nil {
//	    return err
//	}
//
//	for {
//	    p, done, err := m.GetChunk(4096)
//	    if err != nil {
//	        return err
//	    }
//	    if done {
//	        break
//	    }
//	    out.Write(p)
//	}
//
// Each GetChunk call decodes at most one read worth of data and stops at
// the next boundary: the end of the loop holding the cursor, the start of
// the next active loop, or the end of the region. At a loop end the loop
// count is decremented and playback seeks back to the loop start; on the
// last pass the loop is switched off and playback runs on. At the region
// end the overall repeat count decides between draining and restarting,
// and a restart re-arms every loop. A count <= 0 repeats forever.
//
// A read or seek error is returned as container.ErrIO. The cursor goes back
// to where the failed call started and no counter changes, so the call can
// be retried.
package music
