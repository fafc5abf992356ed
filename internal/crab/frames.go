package crab

import "strings"

// Frame dimensions used for collision and layout. Every template renders as
// FrameHeight lines no wider than FrameWidth cells.
const (
	FrameWidth  = 20
	FrameHeight = 4
)

// TemplateID identifies one ASCII body template. Eyes and mouth are
// substituted per mood when rendering, so the same shell serves several moods.
type TemplateID int

const (
	TplStandRight TemplateID = iota
	TplStandLeft
	TplWalkRight
	TplWalkLeft
	TplClapRight
	TplClapLeft
	TplBegRight
	TplBegLeft
	TplDanceA
	TplDanceB
)

// Eye and mouth glyph pairs. Stand/walk/beg shells take the 3-cell eyes,
// clap/dance shells the 5-cell ones.
const (
	EyesOpen  = "o o"
	EyesSad   = "- -"
	EyesBeg   = "T T"
	EyesClap  = "^o o^"
	EyesDance = "*o o*"

	MouthFlat  = "-"
	MouthFrown = "n"
	MouthWavy  = "~"
	MouthSmile = "u"
	MouthGrin  = "w"
)

var templates = map[TemplateID]string{
	TplStandRight: `    _~^~^~_
\) /  {eyes}  \ (/
  '_   {mouth}   _'
  \ '-----' /`,

	TplStandLeft: `    _~^~^~_
(\ /  {eyes}  \ ()
  '_   {mouth}   _'
  / '-----' \`,

	TplWalkRight: `    _~^~^~_
\) /  {eyes}  \ (/
 '-_   {mouth}   _'\
  | '-----' `,

	TplWalkLeft: `    _~^~^~_
(\ /  {eyes}  \ ()
 /'_   {mouth}   _-'
    '-----' |`,

	TplClapRight: `    _~^~^~_
\/ /  {eyes}  \ \/
  '_   {mouth}   _'
  \ '-----' /`,

	TplClapLeft: `    _~^~^~_
\/ /  {eyes}  \ \/
  '_   {mouth}   _'
  / '-----' \`,

	TplBegRight: `    _~^~^~_
\\ /  {eyes}  \ //
  '_   {mouth}   _'
  \ '-----' /`,

	TplBegLeft: `    _~^~^~_
// /  {eyes}  \ \\
  '_   {mouth}   _'
  / '-----' \`,

	TplDanceA: `   \\_~^~^~_//
   /  {eyes}  \
  '_    {mouth}    _'
  \\ '-----' //`,

	TplDanceB: `  //_~^~^~_\\
   /  {eyes}  \
  '_    {mouth}    _'
  // '-----' \\`,
}

// Art renders a template with the given eye and mouth glyphs.
func Art(tpl TemplateID, eyes, mouth string) string {
	art, ok := templates[tpl]
	if !ok {
		art = templates[TplStandRight]
	}
	r := strings.NewReplacer("{eyes}", eyes, "{mouth}", mouth)
	return r.Replace(art)
}
