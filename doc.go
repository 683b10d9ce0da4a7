// Package ner evaluates BIO named-entity taggers over person, organization
// and location spans.
//
// # Quick Start
//
//	tagger, err := ner.New("bilstm_ner.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tagger.Close()
//
//	res, err := ner.Evaluate(ctx, tagger, batches)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("P=%.4f R=%.4f F1=%.4f\n", res.Metrics.Precision, res.Metrics.Recall, res.F1())
//
// Decoding and scoring live in the span and metric packages and can be used
// on their own with any tag sequences.
//
// # Thread Safety
//
// Tagger is safe for concurrent use. It manages an internal pool of ONNX
// sessions, configurable via WithPoolSize. Evaluate runs up to WithWorkers
// batches at once and always concatenates predictions in batch order.
package ner
