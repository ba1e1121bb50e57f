/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package labeler

import (
	"fmt"
	"strings"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/wirecode"
)

// Rule is the outcome of one labelling rule.
type Rule struct {
	// Label is the label the rule may add.
	Label label.Label
	// Fired reports whether the label is added.
	Fired bool
	// Reason is a short explanation of why the rule fired or was skipped.
	Reason string
}

// Decision is the full result of evaluating an error against a context.
type Decision struct {
	Kind        kind.Kind
	Session     string
	RetryWrites string
	// Rules lists the evaluated rules in evaluation order. Empty for kinds
	// the engine does not classify.
	Rules []Rule
}

// Labels returns the labels of the rules that fired, in order.
func (d Decision) Labels() []label.Label {
	var out []label.Label
	for _, r := range d.Rules {
		if r.Fired {
			out = append(out, r.Label)
		}
	}
	return out
}

// snapshot is the session state read once per evaluation so that all rules
// observe the same values.
type snapshot struct {
	inTxn, committing, aborting bool
}

func takeSnapshot(s apis.Session) snapshot {
	if s == nil {
		return snapshot{}
	}
	return snapshot{
		inTxn:      s.InTransaction(),
		committing: s.CommittingTransaction(),
		aborting:   s.AbortingTransaction(),
	}
}

func (st snapshot) String() string {
	switch {
	case st.committing:
		return "committing"
	case st.aborting:
		return "aborting"
	case st.inTxn:
		return "in_transaction"
	default:
		return "none"
	}
}

// Evaluate computes which labels e should carry without mutating it.
// A nil session is treated as a session outside any transaction.
func Evaluate(e *dresp.Error, cc ClientContext, s apis.Session) Decision {
	st := takeSnapshot(s)
	d := Decision{Session: st.String(), RetryWrites: cc.mode()}
	if e == nil {
		return d
	}
	d.Kind = e.Kind

	switch e.Kind {
	case kind.SocketError:
		d.Rules = append(d.Rules, transientRule(st), unknownCommitOnSocketRule(st))
	case kind.SocketTimeoutError:
		// No transaction-specific label: a timeout alone says nothing about
		// whether the transaction may be retried from the start.
	case kind.OperationFailure:
		d.Rules = append(d.Rules, unknownCommitOnFailureRule(e, st))
	default:
		return d
	}
	d.Rules = append(d.Rules, retryableWriteRule(e, cc, st))
	return d
}

// Classify adds the labels Evaluate decides on to e and returns the decision.
// Labels already present are left in place; classifying twice is the same
// as classifying once.
func Classify(e *dresp.Error, cc ClientContext, s apis.Session) Decision {
	d := Evaluate(e, cc, s)
	for _, l := range d.Labels() {
		e.AddLabel(l)
	}
	return d
}

// Explain renders the decision for e as a short multi-line trace.
//
// Example output:
//
//	kind="socket_error" session=in_transaction retry_writes=modern
//	TransientTransactionError: fired (in transaction)
//	UnknownTransactionCommitResult: skipped (not committing)
//	RetryableWriteError: skipped (in transaction)
func Explain(e *dresp.Error, cc ClientContext, s apis.Session) string {
	d := Evaluate(e, cc, s)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q session=%s retry_writes=%s\n", d.Kind, d.Session, d.RetryWrites)
	if len(d.Rules) == 0 {
		_, _ = fmt.Fprintln(&b, "no rules: kind is not classified")
	}
	for _, r := range d.Rules {
		verdict := "skipped"
		if r.Fired {
			verdict = "fired"
		}
		_, _ = fmt.Fprintf(&b, "%s: %s (%s)\n", r.Label, verdict, r.Reason)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func transientRule(st snapshot) Rule {
	r := Rule{Label: label.TransientTransactionError}
	switch {
	case st.committing:
		r.Reason = "committing"
	case st.inTxn:
		r.Fired, r.Reason = true, "in transaction"
	default:
		r.Reason = "not in transaction"
	}
	return r
}

func unknownCommitOnSocketRule(st snapshot) Rule {
	if st.committing {
		return Rule{Label: label.UnknownTransactionCommitResult, Fired: true, Reason: "committing"}
	}
	return Rule{Label: label.UnknownTransactionCommitResult, Reason: "not committing"}
}

func unknownCommitOnFailureRule(e *dresp.Error, st snapshot) Rule {
	r := Rule{Label: label.UnknownTransactionCommitResult}
	if !st.committing {
		r.Reason = "not committing"
		return r
	}
	evidence := commitAmbiguity(e)
	if evidence == "" {
		r.Reason = "no commit ambiguity"
		return r
	}
	r.Fired, r.Reason = true, evidence
	return r
}

// commitAmbiguity names the first piece of evidence that the commit may have
// applied despite the failure, or "" when the failure is definite.
func commitAmbiguity(e *dresp.Error) string {
	switch {
	case e.WriteRetryable():
		return "write_retryable"
	case e.WTimeout():
		return "wtimeout"
	case e.HasWriteConcernError() && !wirecode.IsUnlabeledWriteConcern(e.WriteConcern.Code):
		return fmt.Sprintf("write_concern_error %d", e.WriteConcern.Code)
	case e.MaxTimeMSExpired():
		return "max_time_ms_expired"
	default:
		return ""
	}
}

func retryableWriteRule(e *dresp.Error, cc ClientContext, st snapshot) Rule {
	r := Rule{Label: label.RetryableWriteError}
	if !e.WriteRetryable() {
		r.Reason = "not write-retryable"
		return r
	}
	switch {
	case st.committing:
		r.Fired, r.Reason = true, "committing"
	case st.aborting:
		r.Fired, r.Reason = true, "aborting"
	case st.inTxn:
		r.Reason = "in transaction"
	case cc.RetryWritesEffective():
		r.Fired, r.Reason = true, "retry_writes "+cc.mode()
	default:
		r.Reason = "retry_writes disabled"
	}
	return r
}
