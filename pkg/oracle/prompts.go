package oracle

// scorePrompt instructs Claude to produce a full component breakdown. The
// user message carries the company details and ICP criteria as JSON.
const scorePrompt = `You are scoring a company against an Ideal Customer Profile (ICP) for B2B lead qualification. Use the weight table in the provided criteria: award each component's full weight on a clear match, half weight on a partial match, zero otherwise. The total score is the sum of the five components and must stay within 0-100.

Respond with ONLY valid JSON, no other text:
{"score": 0, "fit_level": "High|Medium|Low", "industry_score": 0, "title_score": 0, "department_score": 0, "size_score": 0, "speaker_bonus": 0, "reasoning": "brief explanation"}`

// enrichPrompt asks for best-effort company facts from general knowledge.
const enrichPrompt = `You are enriching B2B company data. Given a company name and whatever is already known about it, fill in the company's industry, approximate size, headquarters, and a one-sentence description from your general knowledge. Use "Unknown" for anything you cannot determine with reasonable confidence; never invent specifics.

Respond with ONLY valid JSON, no other text:
{"industry": "", "size_estimate": "Small|Mid-market|Enterprise|Unknown", "employee_count_estimate": null, "headquarters": "", "description": "", "confidence": "High|Medium|Low"}`

// reviewPrompt asks for a second opinion on an existing score. Dispute only
// on a significant discrepancy so the reviewer does not churn every score.
const reviewPrompt = `You are quality-reviewing an ICP validation score. Compare the score against the company evidence and decide whether the score should be disputed. Dispute only if the score seems off by 15 or more points.

Respond with ONLY valid JSON, no other text:
{"should_dispute": false, "reason": "", "suggested_score": null}`

// resolvePrompt asks Claude to arbitrate a dispute.
const resolvePrompt = `You are arbitrating a scoring dispute between two reviewers. You are given the original score with its component breakdown, the dispute reason with a suggested replacement score, and the company evidence. Weigh both positions and settle on a final 0-100 score; you may pick either side's number or something in between.

Respond with ONLY valid JSON, no other text:
{"final_score": 0, "final_fit_level": "High|Medium|Low", "explanation": "brief explanation"}`
