// Package parser implements the streaming FIX message parser: a
// byte-resumable state machine that tokenizes tag=value<SOH> pairs,
// validates the positional header, dispatches into a per-MsgType
// dictionary template, recurses into nested repeating groups, fast-tracks
// length-prefixed binary values, verifies the trailing checksum, and
// enqueues fully-populated messages for the caller to drain.
package parser

import (
	"strconv"

	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/rule"
)

const (
	tagBeginString  = "8"
	tagBodyLength   = "9"
	tagMsgType      = "35"
	tagSenderCompID = "49"
	tagTargetCompID = "56"
	tagApplVerID    = "1128"
	tagCheckSum     = "10"

	tagEnd   = '='
	valueEnd = 0x01 // SOH
)

type foundMessage int

const (
	foundNotFound foundMessage = iota
	foundFirstByte
	foundSecondByte
)

type messageEndKind int

const (
	messageEndNo messageEndKind = iota
	messageEndYes
	messageEndYesButStop
	messageEndYesMessageComplete
)

// tagRuleModeKind discriminates the stack of pending tag-ordering
// expectations: a fast-track byte read currently in flight, or a freshly
// opened repeating group awaiting its entries.
type tagRuleModeKind int

const (
	modeLengthThenValue tagRuleModeKind = iota
	modeRepeatingGroups
)

type tagRuleMode struct {
	kind tagRuleModeKind

	// modeLengthThenValue
	valueTag  string
	byteCount int

	// modeRepeatingGroups
	repeating *repeatingGroupState
}

// groupEntryState tracks one in-progress repeating-group entry: the
// message being populated plus what's left to fill on it.
type groupEntryState struct {
	message                 message.Template
	remainingFields         map[string]rule.Rule
	fields                  map[string]rule.Rule
	remainingRequiredFields map[string]struct{}
}

// repeatingGroupState tracks one active (possibly nested) repeating group:
// how many entries it declared, the per-entry template, and the entries
// folded so far.
type repeatingGroupState struct {
	numberOfTag   string
	groupCount    int
	groupTemplate message.Template
	firstTag      string
	entries       []*groupEntryState
}

// checkLastEntryComplete records (first-write-wins) a missing required or
// conditionally-required tag on the most recently opened entry, matching
// the deferred-reporting rule: the error can't be raised immediately
// because MsgSeqNum may not be parsed yet and is needed to build a Reject.
func (g *repeatingGroupState) checkLastEntryComplete(version fixversion.MessageVersion, missingTag, missingConditionalTag *string) {
	if *missingTag != "" || *missingConditionalTag != "" {
		return
	}
	if len(g.entries) == 0 {
		return
	}
	last := g.entries[len(g.entries)-1]

	for tag := range last.remainingRequiredFields {
		*missingTag = tag
		return
	}

	for _, tag := range last.message.ConditionalRequiredFields(version) {
		if _, ok := last.remainingFields[tag]; ok {
			*missingConditionalTag = tag
			return
		}
	}
}

// Parser is a single-threaded, byte-resumable FIX message tokenizer. One
// instance belongs to one logical session; it is not safe for concurrent
// mutation, matching the single-threaded cooperative state machine the
// protocol mandates.
type Parser struct {
	dict *dictionary.Dictionary

	defaultMessageVersion     fixversion.MessageVersion
	defaultMessageTypeVersion map[string]fixversion.MessageVersion
	valueToLengthTags         map[string]string

	foundMessage        foundMessage
	currentTag          string
	currentBytes        []byte
	beginString         fixversion.BeginString
	messageVersion      fixversion.MessageVersion
	bodyLength          uint64
	messageType         string
	checksum            byte
	senderCompID        []byte
	targetCompID        []byte
	bodyRemainingLength uint64
	previousTag         string
	nextTagChecksum     bool

	tagRuleModeStack        []*tagRuleMode
	fastTrackBytesRemaining int
	foundTagCount           int

	remainingFields         map[string]rule.Rule
	messageFields           map[string]rule.Rule
	remainingRequiredFields map[string]struct{}
	missingTag              string
	missingConditionalTag   string

	currentMessage message.Template

	// Messages is the output queue; the caller must drain it between
	// calls to Parse. Completed messages are appended in input order.
	Messages []message.Template
}

// New constructs a Parser bound to dict. dict is validated at dictionary.New
// time, not here; New just derives the ConfirmPreviousTag sanity-check map.
func New(dict *dictionary.Dictionary) *Parser {
	p := &Parser{
		dict:                      dict,
		defaultMessageVersion:     fixversion.DefaultApplVerID,
		defaultMessageTypeVersion: make(map[string]fixversion.MessageVersion),
		valueToLengthTags:         dict.ValueToLengthTags(),
		currentMessage:            message.NullMessage{},
	}
	return p
}

// ResetParser discards all in-progress parsing state unconditionally,
// leaving the parser ready to scan for the next message header.
func (p *Parser) ResetParser() {
	p.foundMessage = foundNotFound
	p.currentTag = ""
	p.currentBytes = nil
	p.bodyLength = 0
	p.messageType = ""
	p.checksum = 0
	p.senderCompID = nil
	p.targetCompID = nil
	p.bodyRemainingLength = 0
	p.previousTag = ""
	p.nextTagChecksum = false
	p.tagRuleModeStack = nil
	p.fastTrackBytesRemaining = 0
	p.foundTagCount = 0
	p.remainingFields = nil
	p.messageFields = nil
	p.remainingRequiredFields = nil
	p.missingTag = ""
	p.missingConditionalTag = ""
	p.currentMessage = message.NullMessage{}
}

// SetDefaultMessageVersion sets the session-wide FIXT.1.1 fallback used
// when neither a per-message default nor an explicit ApplVerID is present.
func (p *Parser) SetDefaultMessageVersion(v fixversion.MessageVersion) {
	p.defaultMessageVersion = v
}

// SetDefaultMessageTypeVersion sets the FIXT.1.1 fallback version for one
// specific message type. A version already set for msgType is left alone.
func (p *Parser) SetDefaultMessageTypeVersion(msgType string, v fixversion.MessageVersion) {
	if _, ok := p.defaultMessageTypeVersion[msgType]; !ok {
		p.defaultMessageTypeVersion[msgType] = v
	}
}

func asciiToUint(b []byte) (uint64, bool) {
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func asciiToInt(b []byte) (int, bool) {
	v, err := strconv.Atoi(string(b))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func setMessageValue(m message.Template, tag string, bytes []byte) *ParseError {
	switch m.SetValue(tag, bytes) {
	case message.SetValueWrongFormat:
		return errTag(WrongFormatTag, tag)
	case message.SetValueOutOfRange:
		return errTag(OutOfRangeTag, tag)
	}
	return nil
}

// Parse feeds bytes into the state machine and returns the number of bytes
// consumed plus an error, if any. On error the parser resets itself before
// returning, so the next call resumes scanning for a fresh header.
// Completed messages accumulate on Messages; callers must drain it between
// calls.
func (p *Parser) Parse(bytes []byte) (int, error) {
	index := 0
	if err := p.parsePrivate(&index, bytes); err != nil {
		p.ResetParser()
		return index, err
	}
	return index, nil
}

func (p *Parser) parsePrivate(index *int, bytes []byte) *ParseError {
	p.scanForMessage(index, bytes)

	if err := p.fastTrackReadBytes(index, bytes); err != nil {
		return err
	}

	for *index < len(bytes) {
		c := bytes[*index]

		if err := p.updateBookKeeping(c); err != nil {
			return err
		}

		switch {
		case c == tagEnd && p.currentTag == "":
			if err := p.matchTagEnd(index, bytes); err != nil {
				return err
			}
		case c == valueEnd:
			end, err := p.matchValueEnd(index, bytes)
			*index++
			if err != nil {
				return err
			}
			switch end {
			case messageEndYes:
				continue
			case messageEndYesMessageComplete:
				p.scanForMessage(index, bytes)
				continue
			case messageEndYesButStop:
				return nil
			}
		default:
			p.currentBytes = append(p.currentBytes, c)
		}

		*index++
	}

	return nil
}

// scanForMessage advances index, discarding bytes, until the two-byte
// sequence "8=" is observed; resumable across calls via foundMessage.
func (p *Parser) scanForMessage(index *int, bytes []byte) {
	if p.foundMessage == foundSecondByte {
		return
	}

	var previousByte byte
	if p.foundMessage == foundFirstByte {
		previousByte = tagBeginString[0]
	}

	for *index < len(bytes) {
		b := bytes[*index]
		if b == tagEnd && previousByte == tagBeginString[0] {
			p.foundMessage = foundSecondByte
			break
		}
		previousByte = b
		*index++
	}

	if p.foundMessage == foundSecondByte {
		p.currentTag = tagBeginString
		p.checksum = tagBeginString[0] + tagEnd
		*index++
	} else if previousByte == '8' && *index == len(bytes) {
		p.foundMessage = foundFirstByte
	}
}

func (p *Parser) fastTrackReadBytes(index *int, bytes []byte) *ParseError {
	for *index < len(bytes) && p.fastTrackBytesRemaining > 0 {
		c := bytes[*index]
		if err := p.updateBookKeeping(c); err != nil {
			return err
		}
		p.currentBytes = append(p.currentBytes, c)
		*index++
		p.fastTrackBytesRemaining--
	}
	return nil
}

func (p *Parser) updateBookKeeping(c byte) *ParseError {
	p.checksum += c

	p.bodyRemainingLength--
	if p.bodyRemainingLength == 0 {
		if c != valueEnd {
			return &ParseError{Kind: ChecksumNotLastTag}
		}
		p.nextTagChecksum = true
	}

	return nil
}

func (p *Parser) prepareForMessage() *ParseError {
	tmpl, ok := p.dict.Lookup(p.messageType)
	if !ok {
		return &ParseError{Kind: MsgTypeUnknown, MsgType: p.messageType}
	}
	p.currentMessage = tmpl.New()
	p.remainingFields = tmpl.Fields(p.messageVersion)
	p.messageFields = tmpl.Fields(p.messageVersion)
	p.remainingRequiredFields = tmpl.RequiredFields(p.messageVersion)
	return nil
}

func (p *Parser) ifChecksumThenIsLastTag() *ParseError {
	isChecksum := p.currentTag == tagCheckSum
	if (isChecksum && !p.nextTagChecksum) || (!isChecksum && p.nextTagChecksum) {
		return &ParseError{Kind: ChecksumNotLastTag}
	}
	return nil
}

func (p *Parser) validateChecksum(value []byte) *ParseError {
	checksum := p.checksum - (tagCheckSum[0] + tagCheckSum[1] + tagEnd + valueEnd)
	for _, c := range value {
		checksum -= c
	}

	stated, ok := asciiToUint(value)
	if !ok || stated > 255 {
		return &ParseError{Kind: ChecksumNotNumber}
	}
	if checksum != byte(stated) {
		return &ParseError{Kind: ChecksumDoesNotMatch, Calculated: checksum, Stated: byte(stated)}
	}

	p.checksum = checksum
	return nil
}

func (p *Parser) isTagKnown(tag string) bool {
	return p.dict.IsTagKnown(tag, p.messageVersion)
}

// resolveMessageVersion picks the MessageVersion to dispatch this message
// against when no ApplVerID has set it: the version implied by BeginString
// for a non-FIXT.1.1 message; for FIXT.1.1, a per-MsgType default, absent
// that, the session-wide default.
func (p *Parser) resolveMessageVersion() fixversion.MessageVersion {
	if p.beginString != fixversion.FIXT11 {
		return fixversion.MessageVersionForBeginString(p.beginString)
	}
	if v, ok := p.defaultMessageTypeVersion[p.messageType]; ok {
		return v
	}
	return p.defaultMessageVersion
}

// matchTagEnd finalizes the tag name accumulated in currentBytes, then —
// if the dictionary declared a PrepareForBytes/ConfirmPreviousTag pair
// expecting this exact tag next — switches straight into a raw byte read
// for its value instead of scanning for the next SOH, so embedded SOH
// bytes inside e.g. RawData are passed through untouched.
func (p *Parser) matchTagEnd(index *int, bytes []byte) *ParseError {
	p.currentTag = string(p.currentBytes)
	p.currentBytes = p.currentBytes[:0]

	if err := p.ifChecksumThenIsLastTag(); err != nil {
		return err
	}

	if n := len(p.tagRuleModeStack); n > 0 {
		if top := p.tagRuleModeStack[n-1]; top.kind == modeLengthThenValue {
			if top.valueTag != p.currentTag {
				return errTag(MissingFollowingLengthTag, p.previousTag)
			}
			p.tagRuleModeStack = p.tagRuleModeStack[:n-1]
			p.fastTrackBytesRemaining = top.byteCount
			*index++
			if err := p.fastTrackReadBytes(index, bytes); err != nil {
				return err
			}
			*index--
		}
	}

	return nil
}

// matchValueEnd finalizes the value accumulated in currentBytes and
// dispatches it: the first six positional header fields are validated by
// slot, then every later field flows through processBodyTag. Once a message
// is fully assembled (CheckSum accepted), a Logon message returns
// messageEndYesButStop so the caller can stop consuming and inspect it
// before feeding more bytes (matching the reference engine's early-return,
// used to let the embedder set version defaults from the Logon before
// anything else is parsed); every other completed message returns
// messageEndYesMessageComplete so the caller re-scans for the next header
// and keeps draining the same buffer. Ordinary tag completions return
// messageEndYes to keep going within the same message.
func (p *Parser) matchValueEnd(index *int, bytes []byte) (messageEndKind, *ParseError) {
	tag := p.currentTag
	value := p.currentBytes
	p.currentTag = ""
	p.currentBytes = nil

	switch p.foundTagCount {
	case 0:
		if tag != tagBeginString {
			return messageEndNo, errTag(BeginStrNotFirstTag, tag)
		}
		bs, ok := fixversion.BeginStringFromBytes(value)
		if !ok {
			return messageEndNo, errTag(WrongFormatTag, tag)
		}
		p.beginString = bs
		p.foundTagCount++
		p.previousTag = tag
		return messageEndYes, nil

	case 1:
		if tag != tagBodyLength {
			return messageEndNo, errTag(BodyLengthNotSecondTag, tag)
		}
		n, ok := asciiToUint(value)
		if !ok {
			return messageEndNo, errTag(BodyLengthNotNumber, tag)
		}
		p.bodyLength = n
		p.bodyRemainingLength = n
		p.foundTagCount++
		p.previousTag = tag
		return messageEndYes, nil

	case 2:
		if tag != tagMsgType {
			return messageEndNo, errTag(MsgTypeNotThirdTag, tag)
		}
		p.messageType = string(value)
		if p.beginString != fixversion.FIXT11 {
			p.messageVersion = p.resolveMessageVersion()
			if err := p.prepareForMessage(); err != nil {
				return messageEndNo, err
			}
		}
		p.foundTagCount++
		p.previousTag = tag
		return messageEndYes, nil

	case 3:
		if p.beginString == fixversion.FIXT11 {
			if tag != tagSenderCompID {
				return messageEndNo, errTag(SenderCompIDNotFourthTag, tag)
			}
			p.senderCompID = append([]byte(nil), value...)
			p.foundTagCount++
			p.previousTag = tag
			return messageEndYes, nil
		}

	case 4:
		if p.beginString == fixversion.FIXT11 {
			if tag != tagTargetCompID {
				return messageEndNo, errTag(TargetCompIDNotFifthTag, tag)
			}
			p.targetCompID = append([]byte(nil), value...)
			p.foundTagCount++
			p.previousTag = tag
			return messageEndYes, nil
		}

	case 5:
		if p.beginString == fixversion.FIXT11 {
			p.foundTagCount++
			if tag == tagApplVerID {
				v, ok := fixversion.FromApplVerID(value)
				if !ok {
					return messageEndNo, errTag(WrongFormatTag, tag)
				}
				p.messageVersion = v
				if err := p.prepareForMessage(); err != nil {
					return messageEndNo, err
				}
				p.previousTag = tag
				return messageEndYes, nil
			}
			p.messageVersion = p.resolveMessageVersion()
			if err := p.prepareForMessage(); err != nil {
				return messageEndNo, err
			}
			// ApplVerID was omitted; this tag is the first ordinary body
			// field and falls through to normal dispatch below.
		}
	}

	if len(value) == 0 {
		return messageEndNo, errTag(NoValueAfterTag, tag)
	}

	if tag == tagApplVerID && p.foundTagCount >= 6 {
		return messageEndNo, errTag(ApplVerIDNotSixthTag, tag)
	}

	if tag == tagCheckSum {
		if err := p.validateChecksum(value); err != nil {
			return messageEndNo, err
		}
		if err := p.finalizeMessage(); err != nil {
			return messageEndNo, err
		}
		isLogon := p.currentMessage.MsgType() == messages.MsgTypeLogon
		p.resetForNextMessage()
		if isLogon {
			return messageEndYesButStop, nil
		}
		return messageEndYesMessageComplete, nil
	}

	if err := p.processBodyTag(tag, value); err != nil {
		return messageEndNo, err
	}
	p.previousTag = tag
	p.foundTagCount++
	return messageEndYes, nil
}

// innermostEntry returns the most recently opened entry of the innermost
// repeating group that has any entries, or nil if no such entry is open.
func (p *Parser) innermostEntry() *groupEntryState {
	for i := len(p.tagRuleModeStack) - 1; i >= 0; i-- {
		if f := p.tagRuleModeStack[i]; f.kind == modeRepeatingGroups && len(f.repeating.entries) > 0 {
			return f.repeating.entries[len(f.repeating.entries)-1]
		}
	}
	return nil
}

func (p *Parser) topGroupFrame() *tagRuleMode {
	for i := len(p.tagRuleModeStack) - 1; i >= 0; i-- {
		if f := p.tagRuleModeStack[i]; f.kind == modeRepeatingGroups {
			return f
		}
	}
	return nil
}

// processBodyTag dispatches one non-header, non-checksum tag: against the
// innermost open repeating-group entry if one is active, folding completed
// groups back up into their owner as they close; otherwise against the
// top-level message directly.
func (p *Parser) processBodyTag(tag string, value []byte) *ParseError {
	frame := p.topGroupFrame()
	if frame == nil {
		return p.processTopLevelTag(tag, value)
	}

	rg := frame.repeating

	if tag == rg.firstTag {
		if len(rg.entries) >= rg.groupCount {
			return errTag(RepeatingGroupTagWithNoRepeatingGroup, tag)
		}
		entry := &groupEntryState{
			message:                 rg.groupTemplate.New(),
			remainingFields:         rg.groupTemplate.Fields(p.messageVersion),
			fields:                  rg.groupTemplate.Fields(p.messageVersion),
			remainingRequiredFields: rg.groupTemplate.RequiredFields(p.messageVersion),
		}
		rg.entries = append(rg.entries, entry)
		return p.setEntryField(entry, tag, value)
	}

	if len(rg.entries) == 0 {
		return errTag(MissingFirstRepeatingGroupTagAfterNumberOfRepeatingGroupTag, tag)
	}

	entry := rg.entries[len(rg.entries)-1]
	if _, ok := entry.remainingFields[tag]; ok {
		return p.setEntryField(entry, tag, value)
	}

	if len(rg.entries) < rg.groupCount {
		return errTag(NonRepeatingGroupTagInRepeatingGroup, tag)
	}

	rg.checkLastEntryComplete(p.messageVersion, &p.missingTag, &p.missingConditionalTag)
	if err := p.foldTopRepeatingGroupDown(); err != nil {
		return err
	}
	return p.processBodyTag(tag, value)
}

func (p *Parser) processTopLevelTag(tag string, value []byte) *ParseError {
	r, ok := p.remainingFields[tag]
	if !ok {
		if _, known := p.messageFields[tag]; known {
			return errTag(DuplicateTag, tag)
		}
		if p.isTagKnown(tag) {
			return errTag(UnexpectedTag, tag)
		}
		return errTag(UnknownTag, tag)
	}
	delete(p.remainingFields, tag)
	delete(p.remainingRequiredFields, tag)

	if r.Kind != rule.BeginGroup {
		if err := setMessageValue(p.currentMessage, tag, value); err != nil {
			return err
		}
	}
	return p.handleRuleAfterValue(tag, r, value)
}

func (p *Parser) setEntryField(entry *groupEntryState, tag string, value []byte) *ParseError {
	r, ok := entry.remainingFields[tag]
	if !ok {
		if _, known := entry.fields[tag]; known {
			return errTag(DuplicateTag, tag)
		}
		if p.isTagKnown(tag) {
			return errTag(UnexpectedTag, tag)
		}
		return errTag(UnknownTag, tag)
	}
	delete(entry.remainingFields, tag)
	delete(entry.remainingRequiredFields, tag)

	if r.Kind != rule.BeginGroup {
		if err := setMessageValue(entry.message, tag, value); err != nil {
			return err
		}
	}
	return p.handleRuleAfterValue(tag, r, value)
}

// handleRuleAfterValue acts on the Rule governing a field immediately after
// its value has been stored: arming a pending fast-track byte read, or
// pushing a new repeating-group frame onto the stack.
func (p *Parser) handleRuleAfterValue(tag string, r rule.Rule, value []byte) *ParseError {
	switch r.Kind {
	case rule.Nothing, rule.RequiresFIXVersion:
		return nil

	case rule.PrepareForBytes:
		n, ok := asciiToInt(value)
		if !ok {
			return errTag(OutOfRangeTag, tag)
		}
		p.tagRuleModeStack = append(p.tagRuleModeStack, &tagRuleMode{
			kind:      modeLengthThenValue,
			valueTag:  r.BytesTag,
			byteCount: n,
		})
		return nil

	case rule.ConfirmPreviousTag:
		if p.previousTag != r.PreviousTag {
			return errTag(MissingPrecedingLengthTag, tag)
		}
		return nil

	case rule.BeginGroup:
		groupTemplate, ok := r.GroupTemplate.(message.Template)
		if !ok {
			return errTag(WrongFormatTag, tag)
		}
		count, ok := asciiToInt(value)
		if !ok {
			return errTag(OutOfRangeTag, tag)
		}
		if count == 0 {
			if len(p.tagRuleModeStack) > 0 {
				if entry := p.innermostEntry(); entry != nil {
					entry.message.SetGroups(tag, nil)
				}
			} else {
				p.currentMessage.SetGroups(tag, nil)
			}
			return nil
		}
		p.tagRuleModeStack = append(p.tagRuleModeStack, &tagRuleMode{
			kind: modeRepeatingGroups,
			repeating: &repeatingGroupState{
				numberOfTag:   tag,
				groupCount:    count,
				groupTemplate: groupTemplate,
				firstTag:      groupTemplate.FirstField(p.messageVersion),
			},
		})
		return nil
	}

	return nil
}

// foldTopRepeatingGroupDown closes the innermost open repeating-group
// frame, handing its folded entries to whichever level now owns that
// field: the entry one level up if this group was nested, or the
// top-level message otherwise.
func (p *Parser) foldTopRepeatingGroupDown() *ParseError {
	n := len(p.tagRuleModeStack)
	if n == 0 {
		return nil
	}
	frame := p.tagRuleModeStack[n-1]
	if frame.kind != modeRepeatingGroups {
		return nil
	}
	rg := frame.repeating
	p.tagRuleModeStack = p.tagRuleModeStack[:n-1]

	entries := make([]message.Template, 0, len(rg.entries))
	for _, e := range rg.entries {
		entries = append(entries, e.message)
	}

	if parentEntry := p.innermostEntry(); parentEntry != nil {
		parentEntry.message.SetGroups(rg.numberOfTag, entries)
	} else {
		p.currentMessage.SetGroups(rg.numberOfTag, entries)
	}
	return nil
}

// finalizeMessage folds any still-open repeating groups, checks every
// required and deferred-conditional tag was actually seen, attaches framing
// Meta, and enqueues the completed message.
func (p *Parser) finalizeMessage() *ParseError {
	for len(p.tagRuleModeStack) > 0 {
		if frame := p.topGroupFrame(); frame != nil {
			frame.repeating.checkLastEntryComplete(p.messageVersion, &p.missingTag, &p.missingConditionalTag)
		}
		if err := p.foldTopRepeatingGroupDown(); err != nil {
			return err
		}
	}

	if len(p.remainingRequiredFields) > 0 {
		var missing string
		for t := range p.remainingRequiredFields {
			missing = t
			break
		}
		return &ParseError{Kind: MissingRequiredTag, Tag: missing, PartialMessage: p.currentMessage}
	}
	if p.missingTag != "" {
		return &ParseError{Kind: MissingRequiredTag, Tag: p.missingTag, PartialMessage: p.currentMessage}
	}

	for _, tag := range p.currentMessage.ConditionalRequiredFields(p.messageVersion) {
		if _, stillUnset := p.remainingFields[tag]; stillUnset {
			return &ParseError{Kind: MissingConditionallyRequiredTag, Tag: tag, PartialMessage: p.currentMessage}
		}
	}
	if p.missingConditionalTag != "" {
		return &ParseError{Kind: MissingConditionallyRequiredTag, Tag: p.missingConditionalTag, PartialMessage: p.currentMessage}
	}

	p.currentMessage.SetMeta(message.Meta{
		BeginString: p.beginString,
		BodyLength:  p.bodyLength,
		CheckSum:    p.checksum,
	})
	p.Messages = append(p.Messages, p.currentMessage)
	return nil
}

// resetForNextMessage clears per-message state after a message has been
// enqueued, preserving Messages, the dictionary, and the session-level
// default-version configuration so the parser is ready to scan for the
// next header in the same stream.
func (p *Parser) resetForNextMessage() {
	p.foundMessage = foundNotFound
	p.currentTag = ""
	p.currentBytes = nil
	p.bodyLength = 0
	p.messageType = ""
	p.checksum = 0
	p.senderCompID = nil
	p.targetCompID = nil
	p.bodyRemainingLength = 0
	p.previousTag = ""
	p.nextTagChecksum = false
	p.tagRuleModeStack = nil
	p.fastTrackBytesRemaining = 0
	p.foundTagCount = 0
	p.remainingFields = nil
	p.messageFields = nil
	p.remainingRequiredFields = nil
	p.missingTag = ""
	p.missingConditionalTag = ""
	p.currentMessage = message.NullMessage{}
}
