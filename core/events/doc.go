// Package events defines the typed event contract for the voice session
// pipeline.
//
// Event kinds are grouped by producer-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - tool_call.*
//   - assistant_speech.*
//   - turn_state.*
//   - session.*
//
// Semantics used across the package:
//
//   - Frame: binary audio payload.
//   - Partial: mutable point-in-time transcript snapshot that can change.
//   - Final: terminal immutable text for the current utterance/stream.
//   - Chunk: append-only text piece emitted in stream order.
//
// user_input events
//
//   - UserAudioFrame (user_input.audio_frame): raw user input audio frame.
//   - UserSpeechStarted (user_input.speech_started): speech activity began.
//   - UserSpeechEnded (user_input.speech_ended): speech activity ended.
//   - TranscriptPartial (user_input.transcript_partial): interim
//     transcription snapshot while the user is still speaking.
//   - TranscriptFinal (user_input.transcript_final): terminal transcription
//     for the utterance; exactly one per user turn.
//   - InterruptionSignaled (user_input.interruption): the transport detected
//     the user speaking while synthesis was in progress.
//
// assistant_response events
//
//   - GenerationStarted (assistant_response.started): response generation
//     started; opens a new logical assistant message.
//   - GenerationChunk (assistant_response.chunk): streamed response text
//     chunk.
//   - GenerationEnded (assistant_response.ended): response generation is
//     complete for the turn.
//
// tool_call events
//
//   - ToolCallStarted (tool_call.started): tool execution started.
//   - ToolCallCompleted (tool_call.completed): tool execution completed.
//   - ToolCallFailed (tool_call.failed): tool execution failed.
//
// assistant_speech events
//
//   - PlaybackChunkRequested (assistant_speech.chunk_requested): a text
//     chunk was handed to the synthesizer; implies playback is starting if
//     no explicit start was observed.
//   - PlaybackStarted (assistant_speech.started): synthesized audio playback
//     started.
//   - PlaybackStopped (assistant_speech.stopped): synthesized audio playback
//     stopped.
//   - SpeechFrame (assistant_speech.frame): synthesized speech audio frame.
//
// turn_state events
//
//   - TurnStarted (turn_state.started): current turn started.
//   - TurnCompleted (turn_state.completed): current turn completed.
//   - TurnFailed (turn_state.failed): current turn failed.
//
// session events
//
//   - RunRequested (session.run_requested): ask the assistant to generate a
//     turn without a user utterance, e.g. the initial greeting.
package events
