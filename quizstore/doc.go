// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quizstore fetches and compiles quiz content from the external
content store.

The store is a Supabase project queried over its PostgREST interface with
one nested select: quizzes -> phases -> questions -> options, each level
carrying a position column. FetchQuiz flattens ordered phases into a
single ordered question list and caps each question at four options,
producing []session.Question ready for Session.LoadQuiz.

Failures are distinct and user-actionable:

  - ErrNotConfigured: SUPABASE_URL / SUPABASE_ANON_KEY unset
  - ErrNotFound: the code resolves to nothing
  - ErrTimeout: the store exceeded the configured deadline
  - ErrUnavailable: transport or server failure

Every request carries a bounded timeout, and callers fetch first and
apply to session state afterwards, so the store is never awaited while a
session lock is held.
*/
package quizstore
