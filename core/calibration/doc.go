// Package calibration maps a candidate's heuristic evidence onto a
// probability of being the company's official site.
//
// Every candidate is described by the same 17 features, in the order of
// [FeatureNames]. That order is part of the model: a model trained on one
// order must never score vectors built in another, so [Load] rejects a model
// whose feature names differ and [Model.Predict] rejects a vector of the
// wrong length with [ErrFeatureMismatch].
//
// Two model kinds exist. A logistic model is fitted by batch gradient
// descent with L2 regularization. A correlation model is the closed-form
// fallback: standardized feature-label correlations as weights and a bias
// that centers the decision boundary on the feature means. Training falls
// back to the correlation model when the labels hold a single class.
//
// Models are stored as a tagged JSON envelope carrying the model kind and a
// schema version, so a future feature-set change fails loudly on load.
package calibration
